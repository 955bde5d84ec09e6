package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"manifold/internal/diag"
	"manifold/internal/source"
)

// Options configures a scan.
type Options struct {
	Reporter diag.Reporter
}

// ScanFile scans a loaded header into its ordered items. Scan problems are
// reported through the reporter and degrade the affected declaration to an
// ItemOther entry; they never abort the file.
func ScanFile(file *source.File, opts Options) []Item {
	s := &scanner{file: file, rep: opts.Reporter}
	if s.rep == nil {
		s.rep = diag.NopReporter{}
	}
	s.run()
	return s.items
}

// scanner — построчный проход по заголовку с небольшим состоянием:
// накопленные док-строки, маркеры и теги до следующего объявления,
// плюс текущий многострочный блок (struct/enum/прототип).
type scanner struct {
	file  *source.File
	rep   diag.Reporter
	items []Item

	pendingDoc     []string
	pendingMarkers []Marker
	pendingTags    []string
	markerSpan     source.Span

	inComment bool // внутри /* ... */
	block     *blockState
}

type blockState struct {
	kind    ItemKind
	name    string
	head    string // первая строка объявления, для деградации в Other
	tags    []string
	doc     []string
	markers []Marker
	span    source.Span
	body    strings.Builder
	term    byte // '}' для struct/enum, ';' для прототипов
}

func (s *scanner) run() {
	content := s.file.Content
	for start := 0; start < len(content); {
		end := start
		for end < len(content) && content[end] != '\n' {
			end++
		}
		span := source.Span{File: s.file.ID, Start: uint32(start), End: uint32(end)}
		s.line(string(content[start:end]), span)
		start = end + 1
	}
	s.finishEOF()
}

func (s *scanner) line(raw string, span source.Span) {
	text := strings.TrimSpace(raw)

	if s.inComment {
		idx := strings.Index(text, "*/")
		if idx < 0 {
			return
		}
		s.inComment = false
		text = strings.TrimSpace(text[idx+2:])
		if text == "" {
			return
		}
	}

	// Док-комментарии распознаются до общей зачистки: "///" начинается с "//".
	if s.block == nil && strings.HasPrefix(text, "///") {
		s.pendingDoc = append(s.pendingDoc, docLine(text))
		return
	}

	text = strings.TrimSpace(s.stripComments(text))

	if s.block != nil {
		s.blockLine(text, span)
		return
	}
	if text == "" {
		// Пустая строка отсоединяет док-блок от следующего объявления.
		s.pendingDoc = nil
		return
	}
	s.classify(text, span)
}

// stripComments убирает /* */ (включая незакрытый хвост) и // до конца строки.
func (s *scanner) stripComments(text string) string {
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			break
		}
		rel := strings.Index(text[start+2:], "*/")
		if rel < 0 {
			s.inComment = true
			text = text[:start]
			break
		}
		text = text[:start] + " " + text[start+2+rel+2:]
	}
	if idx := strings.Index(text, "//"); idx >= 0 {
		text = text[:idx]
	}
	return text
}

func (s *scanner) classify(text string, span source.Span) {
	if strings.HasPrefix(text, "#include") {
		s.includeLine(text, span)
		return
	}
	if strings.HasPrefix(text, "#") {
		s.emitOther(text, span)
		return
	}

	if m, ok := LookupMarker(text); ok {
		if len(s.pendingMarkers) == 0 {
			s.markerSpan = span
		}
		s.pendingMarkers = append(s.pendingMarkers, m)
		return
	}

	head, _, _ := strings.Cut(text, "(")
	switch strings.TrimSpace(head) {
	case "TW_EXPORT_STRUCT", "TW_EXPORT_ENUM":
		s.pendingTags = append(s.pendingTags, text)
		return
	}

	// Прототип, возвращающий "struct X *", тоже начинается со "struct":
	// решает наличие скобки параметров.
	switch {
	case strings.HasPrefix(text, "typedef"):
		s.emitOther(text, span)
	case strings.HasPrefix(text, "struct ") && !strings.Contains(text, "("):
		s.structStart(text, span)
	case strings.HasPrefix(text, "enum ") && !strings.Contains(text, "("):
		s.enumStart(text, span)
	case strings.Contains(text, "("):
		s.funcStart(text, span)
	default:
		s.emitOther(text, span)
	}
}

func (s *scanner) includeLine(text string, span source.Span) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "#include"))
	if path, ok := cutDelimited(rest, '"', '"'); ok {
		s.emitInclude(path, span)
		return
	}
	if path, ok := cutDelimited(rest, '<', '>'); ok {
		s.emitInclude(path, span)
		return
	}
	// Макро-включения и прочие формы не раскладываются на сегменты.
	s.emitOther(text, span)
}

func (s *scanner) emitInclude(path string, span source.Span) {
	s.resetPending()
	s.emit(Item{Kind: ItemInclude, Span: span, Include: path})
}

func (s *scanner) structStart(text string, span source.Span) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "struct"))

	if !strings.Contains(rest, "{") {
		// Форвард-объявление: "struct Name;"
		name, semi := strings.CutSuffix(rest, ";")
		name = strings.TrimSpace(name)
		if semi && isIdent(name) {
			s.resetPending()
			s.emit(Item{Kind: ItemStructIndicator, Span: span, Name: name})
			return
		}
		s.emitOther(text, span)
		return
	}

	brace := strings.Index(rest, "{")
	name := strings.TrimSpace(rest[:brace])
	if !isIdent(name) {
		s.emitOther(text, span)
		return
	}
	s.dropMarkers()
	b := &blockState{
		kind: ItemStructDecl,
		name: name,
		head: text,
		tags: s.pendingTags,
		span: span,
		term: '}',
	}
	s.pendingTags = nil
	s.pendingDoc = nil
	s.block = b
	s.blockLine(rest[brace+1:], span)
}

func (s *scanner) enumStart(text string, span source.Span) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "enum"))

	brace := strings.Index(rest, "{")
	if brace < 0 {
		s.emitOther(text, span)
		return
	}
	name := strings.TrimSpace(rest[:brace])
	if !isIdent(name) {
		s.emitOther(text, span)
		return
	}
	s.dropMarkers()
	b := &blockState{
		kind: ItemEnumDecl,
		name: name,
		head: text,
		tags: s.pendingTags,
		span: span,
		term: '}',
	}
	s.pendingTags = nil
	s.pendingDoc = nil
	s.block = b
	s.blockLine(rest[brace+1:], span)
}

func (s *scanner) funcStart(text string, span source.Span) {
	b := &blockState{
		kind:    ItemFunctionDecl,
		head:    text,
		doc:     s.pendingDoc,
		markers: s.pendingMarkers,
		span:    span,
		term:    ';',
	}
	s.pendingDoc = nil
	s.pendingMarkers = nil
	s.block = b
	s.blockLine(text, span)
}

func (s *scanner) blockLine(text string, span source.Span) {
	b := s.block
	b.span = b.span.Cover(span)
	idx := strings.IndexByte(text, b.term)
	if idx < 0 {
		b.body.WriteString(text)
		b.body.WriteByte(' ')
		return
	}
	b.body.WriteString(text[:idx])
	s.block = nil
	switch b.kind {
	case ItemStructDecl:
		s.finishStruct(b)
	case ItemEnumDecl:
		s.finishEnum(b)
	case ItemFunctionDecl:
		s.finishFunc(b)
	}
}

func (s *scanner) finishStruct(b *blockState) {
	var fields []Field
	for _, seg := range strings.Split(b.body.String(), ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		field, err := parseField(seg)
		if err != nil {
			diag.ReportError(s.rep, diag.ScanBadField, b.span,
				fmt.Sprintf("struct %s: %v", b.name, err)).Emit()
			s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
			return
		}
		fields = append(fields, field)
	}
	s.emit(Item{Kind: ItemStructDecl, Span: b.span, Struct: &StructDecl{
		Name:   b.name,
		Fields: fields,
		Tags:   b.tags,
	}})
}

func (s *scanner) finishEnum(b *blockState) {
	var variants []Variant
	for _, seg := range strings.Split(b.body.String(), ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		name, valueText, hasValue := strings.Cut(seg, "=")
		name = strings.TrimSpace(name)
		if !isIdent(name) {
			diag.ReportError(s.rep, diag.ScanBadEnumVariant, b.span,
				fmt.Sprintf("enum %s: %q is not a variant name", b.name, name)).Emit()
			s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
			return
		}
		variant := Variant{Name: name}
		if hasValue {
			value, err := strconv.ParseUint(strings.TrimSpace(valueText), 0, 64)
			if err != nil {
				diag.ReportError(s.rep, diag.ScanBadEnumVariant, b.span,
					fmt.Sprintf("enum %s: variant %s has unparseable value %q", b.name, name, strings.TrimSpace(valueText))).Emit()
				s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
				return
			}
			variant.Value = &value
		}
		variants = append(variants, variant)
	}
	s.emit(Item{Kind: ItemEnumDecl, Span: b.span, Enum: &EnumDecl{
		Name:     b.name,
		Variants: variants,
		Tags:     b.tags,
	}})
}

func (s *scanner) finishFunc(b *blockState) {
	text := strings.TrimSpace(b.body.String())

	open := strings.IndexByte(text, '(')
	closeIdx := strings.LastIndexByte(text, ')')
	if open < 0 || closeIdx < open {
		diag.ReportError(s.rep, diag.ScanBadParamList, b.span,
			"function declaration has no parameter list").Emit()
		s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
		return
	}

	head := typeTokens(text[:open])
	if len(head) < 2 || !isIdent(head[len(head)-1]) {
		diag.ReportError(s.rep, diag.ScanBadType, b.span,
			"function declaration needs a return type and a name").Emit()
		s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
		return
	}
	name := head[len(head)-1]

	ret, err := parseType(head[:len(head)-1])
	if err != nil {
		diag.ReportError(s.rep, diag.ScanBadType, b.span,
			fmt.Sprintf("function %s: return type: %v", name, err)).Emit()
		s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
		return
	}

	params, err := parseParams(text[open+1 : closeIdx])
	if err != nil {
		diag.ReportError(s.rep, diag.ScanBadParamList, b.span,
			fmt.Sprintf("function %s: %v", name, err)).Emit()
		s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
		return
	}

	s.emit(Item{Kind: ItemFunctionDecl, Span: b.span, Func: &FunctionDecl{
		Name:     name,
		Markers:  b.markers,
		Params:   params,
		Return:   ret,
		Comments: b.doc,
	}})
}

func (s *scanner) finishEOF() {
	if b := s.block; b != nil {
		s.block = nil
		diag.ReportError(s.rep, diag.ScanUnclosedBlock, b.span,
			"declaration is not closed before end of file").Emit()
		s.emit(Item{Kind: ItemOther, Span: b.span, Raw: b.head})
	}
	s.dropMarkers()
}

func (s *scanner) emit(item Item) {
	s.items = append(s.items, item)
}

func (s *scanner) emitOther(text string, span source.Span) {
	s.resetPending()
	s.emit(Item{Kind: ItemOther, Span: span, Raw: text})
}

func (s *scanner) resetPending() {
	s.dropMarkers()
	s.pendingDoc = nil
	s.pendingTags = nil
}

// dropMarkers сбрасывает накопленные маркеры с предупреждением: маркер обязан
// стоять непосредственно перед прототипом функции.
func (s *scanner) dropMarkers() {
	if len(s.pendingMarkers) == 0 {
		return
	}
	diag.ReportWarning(s.rep, diag.ScanDanglingMarker, s.markerSpan,
		"export marker is not followed by a function declaration").Emit()
	s.pendingMarkers = nil
}

// docLine нормализует строку док-комментария: срезает "///" с одним ведущим
// пробелом и приводит текст к NFC, чтобы артефакты были байт-стабильны.
func docLine(text string) string {
	t := strings.TrimPrefix(text, "///")
	t = strings.TrimPrefix(t, " ")
	return norm.NFC.String(t)
}

func cutDelimited(text string, open, close byte) (string, bool) {
	if len(text) < 2 || text[0] != open {
		return "", false
	}
	if idx := strings.IndexByte(text[1:], close); idx >= 0 {
		return text[1 : 1+idx], true
	}
	return "", false
}

// typeTokens разбивает сегмент объявления на токены, отделяя приклеенные '*'.
func typeTokens(text string) []string {
	return strings.Fields(strings.ReplaceAll(text, "*", " * "))
}

func parseField(seg string) (Field, error) {
	toks := typeTokens(seg)
	if len(toks) < 2 {
		return Field{}, fmt.Errorf("field %q needs a type and a name", seg)
	}
	name := toks[len(toks)-1]
	if !isIdent(name) {
		return Field{}, fmt.Errorf("field name %q is not an identifier", name)
	}
	ty, err := parseType(toks[:len(toks)-1])
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %v", name, err)
	}
	return Field{Name: name, Type: ty}, nil
}

func parseParams(text string) ([]Param, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "void" {
		return nil, nil
	}
	segs := strings.Split(text, ",")
	params := make([]Param, 0, len(segs))
	for _, seg := range segs {
		toks := typeTokens(seg)
		if len(toks) == 0 {
			return nil, fmt.Errorf("empty parameter")
		}
		name := ""
		typeToks := toks
		last := toks[len(toks)-1]
		if len(toks) >= 2 && isIdent(last) && !isTypeWord(last) &&
			toks[len(toks)-2] != "struct" && toks[len(toks)-2] != "enum" {
			name = last
			typeToks = toks[:len(toks)-1]
		}
		ty, err := parseType(typeToks)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %v", strings.TrimSpace(seg), err)
		}
		params = append(params, Param{Name: name, Type: ty})
	}
	return params, nil
}

// parseType разбирает токены квалифицированного типа:
// [extern|const] (struct X | enum X | скаляр | идентификатор) {* | _Nonnull | _Nullable | const}.
func parseType(toks []string) (Type, error) {
	if len(toks) == 0 {
		return Type{}, fmt.Errorf("empty type expression")
	}

	qual := QualMutable
	i := 0
	if toks[i] == "extern" {
		qual = QualExtern
		i++
	}
	if i < len(toks) && toks[i] == "const" {
		if qual == QualMutable {
			qual = QualConst
		}
		i++
	}
	if i >= len(toks) {
		return Type{}, fmt.Errorf("qualifier without a type")
	}

	var cat Category
	switch tok := toks[i]; tok {
	case "struct", "enum":
		if i+1 >= len(toks) || !isIdent(toks[i+1]) {
			return Type{}, fmt.Errorf("%s reference without a name", tok)
		}
		if tok == "struct" {
			cat = NewStructRef(toks[i+1])
		} else {
			cat = NewEnumRef(toks[i+1])
		}
		i += 2
	default:
		if sc, ok := LookupScalar(tok); ok {
			cat = NewScalar(sc)
		} else if isIdent(tok) {
			cat = NewUnrecognized(tok)
		} else {
			return Type{}, fmt.Errorf("unexpected token %q in type", tok)
		}
		i++
	}

	for ; i < len(toks); i++ {
		switch toks[i] {
		case "*":
			cat = NewPointer(cat)
		case "_Nonnull":
			// non-null и есть умолчание
		case "_Nullable":
			cat = NewNullable(cat)
		case "const":
			if qual == QualMutable {
				qual = QualConst
			}
		default:
			return Type{}, fmt.Errorf("unexpected token %q after type", toks[i])
		}
	}
	return Type{Qual: qual, Cat: cat}, nil
}

func isTypeWord(tok string) bool {
	if _, ok := scalarKeywords[tok]; ok {
		return true
	}
	switch tok {
	case "const", "extern", "struct", "enum", "_Nonnull", "_Nullable":
		return true
	}
	return false
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
