package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// headerSeeds покрывает все виды объявлений плюс типичные поломки.
var headerSeeds = []string{
	"",
	"#pragma once\n",
	"#include \"TWBase.h\"\n#include <stdbool.h>\n",
	"struct TWWallet;\n",
	"TW_EXPORT_STRUCT\nstruct TWAccount {\n    uint64_t balance;\n    const char *label;\n};\n",
	"TW_EXPORT_ENUM(uint32_t)\nenum TWCoinType {\n    TWCoinTypeBitcoin = 0,\n    TWCoinTypeSolana = 5,\n};\n",
	"/// Checks the wallet.\nTW_EXPORT_STATIC_METHOD\nbool TWWalletIsValid(struct TWWallet *_Nonnull wallet);\n",
	"TW_EXPORT_PROPERTY\nuint64_t TWAccountBalance(struct TWAccount *_Nonnull account);\n",
	"TW_EXPORT_METHOD\nTWString *_Nullable TWWalletSign(struct TWWallet *_Nonnull wallet, TWData *_Nonnull digest);\n",
	"enum TWBroken {\n    TWBrokenA = banana,\n};\n",
	"struct TWOpen {\n",
	"TW_EXPORT_STATIC_METHOD\n\nint unrelated;\n",
	"/* block\ncomment */ struct TWHalf { int x; };\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range headerSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.h файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".h" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
