package leadio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

type Format string

const (
	FormatSheet Format = "sheet"
	FormatText  Format = "text"
)

const MaxCandidates = 500

var (
	ErrEmptyInput    = errors.New("import input is empty")
	ErrTooManyLeads  = errors.New("import exceeds maximum number of leads")
	ErrNoLeadsInText = errors.New("no email or phone number found in text")
)

// Candidate ist ein erkannter Lead vor dem Anlegen als Case.
type Candidate struct {
	Row         int
	ClientName  string
	ProjectName string
	Email       string
	Mobile      string
	Source      string
	Priority    entity.CasePriority
	Budget      decimal.Decimal
}

type RowError struct {
	Row    int
	Reason string
}

type Result struct {
	Format     Format
	Candidates []Candidate
	Errors     []RowError
}

type column string

const (
	colName     column = "name"
	colProject  column = "project"
	colEmail    column = "email"
	colMobile   column = "mobile"
	colValue    column = "value"
	colSource   column = "source"
	colPriority column = "priority"
)

var headerAliases = map[string]column{
	"name":          colName,
	"client":        colName,
	"client name":   colName,
	"customer":      colName,
	"customer name": colName,
	"project":       colProject,
	"project name":  colProject,
	"email":         colEmail,
	"e-mail":        colEmail,
	"mail":          colEmail,
	"mobile":        colMobile,
	"phone":         colMobile,
	"contact":       colMobile,
	"phone number":  colMobile,
	"value":         colValue,
	"budget":        colValue,
	"amount":        colValue,
	"source":        colSource,
	"lead source":   colSource,
	"priority":      colPriority,
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	emailExact   = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-()]{6,}\d`)
	nonAmount    = regexp.MustCompile(`[^0-9.\-]`)
)

// Ein Caser hält Zustand und darf nicht zwischen Goroutinen geteilt werden.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}

// Parse erkennt eine Tabellen-Exportdatei (CSV oder UTF-16 TSV aus Excel) anhand der Kopfzeile.
// Ohne erkennbare Namensspalte wird der Inhalt als Fließtext nach E-Mail- und Telefonmustern durchsucht.
func Parse(data []byte) (*Result, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var res *Result
	if delim, cols, ok := detectSheet(text); ok {
		res, err = parseSheet(text, delim, cols)
	} else {
		res, err = parseText(text)
	}
	if err != nil {
		return nil, err
	}
	if len(res.Candidates) > MaxCandidates {
		return nil, ErrTooManyLeads
	}
	return res, nil
}

// decode entfernt ein UTF-8 BOM und wandelt UTF-16 (mit BOM) nach UTF-8.
func decode(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimRight(line, "\r")
		}
	}
	return ""
}

func detectSheet(text string) (rune, map[column]int, bool) {
	head := firstLine(text)
	var delim rune
	switch {
	case strings.Contains(head, "\t"):
		delim = '\t'
	case strings.Contains(head, ","):
		delim = ','
	case strings.Contains(head, ";"):
		delim = ';'
	default:
		return 0, nil, false
	}

	r := csv.NewReader(strings.NewReader(head))
	r.Comma = delim
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		return 0, nil, false
	}

	cols := make(map[column]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if c, ok := headerAliases[key]; ok {
			if _, dup := cols[c]; !dup {
				cols[c] = i
			}
		}
	}
	if _, ok := cols[colName]; !ok {
		return 0, nil, false
	}
	return delim, cols, true
}

func parseSheet(text string, delim rune, cols map[column]int) (*Result, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	res := &Result{Format: FormatSheet}

	// Kopfzeile überspringen
	if _, err := r.Read(); err != nil {
		return nil, err
	}

	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: row, Reason: "import.unreadable_row"})
			continue
		}

		get := func(c column) string {
			if idx, ok := cols[c]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		if isBlank(rec) {
			continue
		}

		cand := Candidate{
			Row:         row,
			ClientName:  title(get(colName)),
			ProjectName: get(colProject),
			Email:       strings.ToLower(get(colEmail)),
			Mobile:      normalizePhone(get(colMobile)),
			Source:      get(colSource),
			Priority:    parsePriority(get(colPriority)),
		}

		if cand.ClientName == "" {
			res.Errors = append(res.Errors, RowError{Row: row, Reason: "import.missing_name"})
			continue
		}
		if cand.Email != "" && !emailExact.MatchString(cand.Email) {
			res.Errors = append(res.Errors, RowError{Row: row, Reason: "import.invalid_email"})
			continue
		}
		budget, ok := parseAmount(get(colValue))
		if !ok {
			res.Errors = append(res.Errors, RowError{Row: row, Reason: "import.invalid_value"})
			continue
		}
		cand.Budget = budget

		res.Candidates = append(res.Candidates, cand)
	}
	return res, nil
}

// parseText teilt unstrukturierten Text in Kandidaten. Eine neue E-Mail oder Telefonnummer
// beginnt einen neuen Kandidaten, wenn der aktuelle dieses Feld schon hat. Eine Zeile ohne
// Kontaktdaten nach einem Kandidaten mit Kontaktdaten gilt als Name des nächsten.
func parseText(text string) (*Result, error) {
	res := &Result{Format: FormatText}

	var cur *Candidate
	flush := func() {
		if cur == nil {
			return
		}
		if cur.Email != "" || cur.Mobile != "" {
			if cur.ClientName == "" {
				cur.ClientName = nameFromContact(cur.Email, cur.Mobile)
			}
			res.Candidates = append(res.Candidates, *cur)
		}
		cur = nil
	}

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line == "" {
			continue
		}
		lineNo := i + 1

		email := emailPattern.FindString(line)
		rest := line
		if email != "" {
			rest = strings.Replace(rest, email, " ", 1)
		}
		phone := ""
		if m := phonePattern.FindString(rest); m != "" {
			if p := normalizePhone(m); p != "" {
				phone = p
				rest = strings.Replace(rest, m, " ", 1)
			}
		}

		if email == "" && phone == "" {
			name := cleanName(line)
			if name == "" {
				continue
			}
			if cur != nil && (cur.Email != "" || cur.Mobile != "") {
				flush()
			}
			if cur == nil {
				cur = &Candidate{Row: lineNo, Priority: entity.PriorityMedium}
			}
			if cur.ClientName == "" {
				cur.ClientName = name
			}
			continue
		}

		if cur != nil && ((email != "" && cur.Email != "") || (phone != "" && cur.Mobile != "")) {
			flush()
		}
		if cur == nil {
			cur = &Candidate{Row: lineNo, Priority: entity.PriorityMedium}
		}
		if email != "" {
			cur.Email = strings.ToLower(email)
		}
		if phone != "" {
			cur.Mobile = phone
		}
		if cur.ClientName == "" {
			cur.ClientName = cleanName(rest)
		}
	}
	flush()

	if len(res.Candidates) == 0 {
		return nil, ErrNoLeadsInText
	}
	return res, nil
}

var labelPrefixes = []string{"name:", "client:", "client name:", "customer:", "contact:"}

// cleanName nimmt einen Namen aus einer Zeile, wenn sie nach einem Namen aussieht.
func cleanName(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range labelPrefixes {
		if strings.HasPrefix(lower, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	s = strings.Trim(s, " ,;:|-()<>")
	if len([]rune(s)) < 2 || len([]rune(s)) > 80 {
		return ""
	}
	letters := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 {
			letters++
		} else if r >= '0' && r <= '9' {
			return ""
		}
	}
	if letters < 2 {
		return ""
	}
	return title(s)
}

func nameFromContact(email, mobile string) string {
	if email != "" {
		local := email[:strings.IndexByte(email, '@')]
		local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
		if name := cleanName(local); name != "" {
			return name
		}
	}
	if mobile != "" {
		return "Lead " + mobile
	}
	return "Lead " + email
}

// normalizePhone behält führendes + und Ziffern. Weniger als 8 oder mehr als 15 Ziffern zählen nicht.
func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b bytes.Buffer
	digits := 0
	for i, r := range s {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		}
	}
	if digits < 8 || digits > 15 {
		return ""
	}
	return b.String()
}

func parsePriority(s string) entity.CasePriority {
	p := entity.CasePriority(strings.ToUpper(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return entity.PriorityMedium
}

// parseAmount akzeptiert Währungszeichen und Tausendertrennzeichen ("₹1,20,000", "$5,000.50").
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(nonAmount.ReplaceAllString(s, ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
