// Package driver orchestrates the extraction pipeline: it loads headers,
// scans them into declaration items, assembles manifests and writes the
// per-header artifacts. All failures inside one header stay inside that
// header's diagnostic bag; the run keeps going.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"manifold/internal/diag"
	"manifold/internal/emit"
	"manifold/internal/grammar"
	"manifold/internal/manifest"
	"manifold/internal/observ"
	"manifold/internal/source"
)

// ExtractOptions configures a single extraction run.
type ExtractOptions struct {
	// MaxDiagnostics ограничивает bag каждого заголовка.
	MaxDiagnostics int
	// Jobs задаёт число воркеров; <=0 означает GOMAXPROCS.
	Jobs int
	// OutDir is where artifacts are written. Empty means dry run: manifests
	// are built but nothing touches the disk.
	OutDir string
	// Format selects the artifact encoding.
	Format emit.Format
	// Cache, if non-nil, is consulted by content hash before scanning and
	// updated after clean extractions.
	Cache *DiskCache
	// Timings appends an informational timing diagnostic to each bag.
	Timings bool
	// Sink receives stage events; nil disables progress reporting.
	Sink ProgressSink
}

// FileResult содержит итог извлечения одного заголовка.
type FileResult struct {
	Path     string             // Путь как его увидел обходчик
	FileID   source.FileID      // ID заголовка в FileSet
	Manifest *manifest.FileInfo // nil, если заголовок не загрузился
	Artifact string             // Путь записанного артефакта, "" если не писали
	Bag      *diag.Bag          // Диагностики
	CacheHit bool               // Манифест взят из кэша без скана
}

// ListHeaders returns the sorted header paths ExtractDir would process.
func ListHeaders(dir string) ([]string, error) {
	return listHeaderFiles(dir)
}

// listHeaderFiles возвращает отсортированный список всех *.h файлов в директории
func listHeaderFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".h") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExtractDir извлекает манифесты из всех *.h файлов в директории параллельно
func ExtractDir(ctx context.Context, dir string, opts ExtractOptions) (*source.FileSet, []FileResult, error) {
	// Собираем список файлов
	files, err := listHeaderFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// Создаём FileSet и предзагружаем все файлы
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		opts.Sink.send(Event{Path: path, Stage: StageLoad, Status: StageBegin})
		started := time.Now()
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки для последующей обработки
			loadErrors[path] = err
			opts.Sink.send(Event{Path: path, Stage: StageLoad, Status: StageEnd, Elapsed: time.Since(started), Failed: true})
			continue
		}
		fileIDs[path] = fileID
		opts.Sink.send(Event{Path: path, Stage: StageLoad, Status: StageEnd, Elapsed: time.Since(started)})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	// Параллельное извлечение
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				// Проверяем ошибку загрузки
				if loadErr, hadError := loadErrors[path]; hadError {
					// Файл не загрузился, создаём результат с ошибкой I/O
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{}, // У ошибок ввода-вывода нет позиции
					})
					results[i] = FileResult{
						Path: path,
						Bag:  bag,
					}
					return nil
				}

				// Сохраняем результат (мьютекс не нужен — индекс i уникален)
				results[i] = ExtractFile(fileSet, fileIDs[path], opts)
				return nil
			}
		}(i, path))
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	return fileSet, results, nil
}

// ExtractFile runs the scan, extract and emit stages for one already loaded
// header and returns its result. The header's bag collects everything the
// stages report; an artifact write failure is an error in the bag, not a
// reason to stop.
func ExtractFile(fileSet *source.FileSet, fileID source.FileID, opts ExtractOptions) FileResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()

	result := FileResult{
		Path:   file.Path,
		FileID: fileID,
		Bag:    bag,
	}

	name, err := manifest.HeaderName(file.Path)
	if err != nil {
		diag.ReportError(reporter, manifest.CodeFor(err), source.Span{File: fileID}, err.Error()).Emit()
		return result
	}

	// Скан пропускаем, если кэш уже видел этот контент
	info, hit := lookupCache(opts.Cache, file.Hash, name)
	result.CacheHit = hit

	if !hit {
		opts.Sink.send(Event{Path: file.Path, Stage: StageScan, Status: StageBegin})
		done := timer.Begin("scan")
		items := grammar.ScanFile(file, grammar.Options{Reporter: reporter})
		done("")
		opts.Sink.send(Event{Path: file.Path, Stage: StageScan, Status: StageEnd})

		opts.Sink.send(Event{Path: file.Path, Stage: StageExtract, Status: StageBegin})
		done = timer.Begin("extract")
		extracted := manifest.Extract(name, items, reporter)
		done("")
		opts.Sink.send(Event{Path: file.Path, Stage: StageExtract, Status: StageEnd, Failed: bag.HasErrors()})
		info = &extracted

		// В кэш попадают только чистые извлечения: манифест с пропусками
		// пересобираем каждый раз, вдруг заголовок починят.
		if opts.Cache != nil && !bag.HasErrors() {
			storeCache(opts.Cache, file.Hash, name, *info)
		}
	} else {
		opts.Sink.send(Event{Path: file.Path, Stage: StageExtract, Status: StageEnd, CacheHit: true})
	}
	result.Manifest = info

	if opts.OutDir != "" {
		opts.Sink.send(Event{Path: file.Path, Stage: StageEmit, Status: StageBegin})
		done := timer.Begin("emit")
		writer := emit.Writer{Dir: opts.OutDir, Format: opts.Format}
		artifact, err := writer.Write(*info)
		if err != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOWriteArtifact,
				Message:  "failed to write artifact: " + err.Error(),
				Primary:  source.Span{},
			})
			done("failed")
			opts.Sink.send(Event{Path: file.Path, Stage: StageEmit, Status: StageEnd, Failed: true})
		} else {
			result.Artifact = artifact
			done(artifact)
			opts.Sink.send(Event{Path: file.Path, Stage: StageEmit, Status: StageEnd})
		}
	}

	if opts.Timings {
		appendTimingDiagnostic(bag, file.Path, timer.Report())
	}

	return result
}
