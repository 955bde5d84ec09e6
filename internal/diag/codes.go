package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Ошибки I/O
	IOInfo          Code = 1000
	IOLoadFileError Code = 1001
	IOWriteArtifact Code = 1002

	// Сканирование заголовков
	ScanInfo           Code = 2000
	ScanUnclosedBlock  Code = 2001
	ScanBadEnumVariant Code = 2002
	ScanBadParamList   Code = 2003
	ScanBadField       Code = 2004
	ScanBadType        Code = 2005
	ScanDanglingMarker Code = 2006

	// Извлечение манифеста
	ManInfo        Code = 3000
	ManBadImport   Code = 3001
	ManBadObject   Code = 3002
	ManBadProperty Code = 3003
	ManBadType     Code = 3004

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	IOInfo:             "I/O information",
	IOLoadFileError:    "I/O load file error",
	IOWriteArtifact:    "I/O artifact write error",
	ScanInfo:           "Scan information",
	ScanUnclosedBlock:  "Unclosed declaration block",
	ScanBadEnumVariant: "Malformed enum variant",
	ScanBadParamList:   "Malformed parameter list",
	ScanBadField:       "Malformed struct field",
	ScanBadType:        "Unparseable type expression",
	ScanDanglingMarker: "Export marker without a following declaration",
	ManInfo:            "Manifest information",
	ManBadImport:       "Import path cannot be decomposed",
	ManBadObject:       "Struct or enum declaration cannot be converted",
	ManBadProperty:     "Function or property declaration cannot be converted",
	ManBadType:         "Type expression cannot be normalized",
	ObsInfo:            "Observability information",
	ObsTimings:         "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
