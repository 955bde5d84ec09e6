// Package fuzztests houses Go fuzz harnesses that exercise the extraction
// pipeline (source -> grammar -> manifest). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// header bytes.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet
// и прогоняют их через скан и извлечение манифеста.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/grammar, internal/manifest,
// internal/diag.

package fuzztests
