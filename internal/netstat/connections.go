package netstat

import (
	"regexp"
	"strings"

	"wincmd/internal/models"
)

const labelConnectionList = "connection list"

// columnPattern is one entry of the header name to sub-pattern table. Each
// pattern holds exactly one capture group. Optional columns may be blank in a
// row (UDP has no state, offload state is only printed for some sockets).
type columnPattern struct {
	name     string
	pattern  string
	optional bool
}

const (
	hostPattern = `(?:\d{1,3}(?:\.\d{1,3}){3}|\[[0-9a-fA-F:.%]+\]|[A-Za-z0-9][\w.-]*)`
	portPattern = `(?:\d{1,5}|[A-Za-z][\w-]*)`
)

var (
	connectionColumns = []columnPattern{
		{name: models.ColumnProto, pattern: `(TCPv6|UDPv6|TCP|UDP)`},
		{name: models.ColumnLocalAddress, pattern: `(` + hostPattern + `:` + portPattern + `)`},
		{name: models.ColumnForeignAddress, pattern: `(\*:\*|` + hostPattern + `:` + portPattern + `)`},
		{
			name:     models.ColumnState,
			pattern:  `(LISTENING|ESTABLISHED|CLOSE_WAIT|TIME_WAIT|FIN_WAIT_1|FIN_WAIT_2|FIN_WAIT1|FIN_WAIT2|SYN_SENT|SYN_RECEIVED|LAST_ACK|CLOSING|CLOSED|DELETE_TCB|BOUND)`,
			optional: true,
		},
		{name: models.ColumnPID, pattern: `(\d+)`},
		{name: models.ColumnTimeInState, pattern: `(\d+)`},
		{name: models.ColumnOffloadState, pattern: `(InHost|Offloading|Offloaded|Uploading)`, optional: true},
		{name: models.ColumnTemplate, pattern: `(Not Applicable|Internet|Datacenter|Compat|Custom)`},
	}

	headerTokenRe = regexp.MustCompile(`\w+(?: \(?\w+\)?)*`)

	// trailing lines printed by -b: an optional service component, then the
	// bracketed executable
	componentLine  = `(?:\n[ \t]*(\w+)[ \t]*)?`
	executableLine = `(?:\n[ \t]*\[([^\]\n]+)\][ \t]*)?`
)

func lookupColumn(name string) (columnPattern, bool) {
	for _, c := range connectionColumns {
		if c.name == name {
			return c, true
		}
	}
	return columnPattern{}, false
}

// resolveSchema turns a header line into the ordered columns it names.
// Tokens that are not known column names are skipped.
func resolveSchema(header string) []columnPattern {
	var schema []columnPattern
	for _, token := range headerTokenRe.FindAllString(header, -1) {
		if c, ok := lookupColumn(token); ok {
			schema = append(schema, c)
		}
	}
	return schema
}

// rowPattern assembles one capture group per schema column followed by the
// two optional continuation lines.
func rowPattern(schema []columnPattern) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?m)^[ \t]*`)
	for i, c := range schema {
		switch {
		case i == 0:
			b.WriteString(c.pattern)
		case c.optional:
			b.WriteString(`(?:[ \t]+` + c.pattern + `)?`)
		default:
			b.WriteString(`[ \t]+` + c.pattern)
		}
	}
	b.WriteString(`[ \t]*`)
	b.WriteString(componentLine)
	b.WriteString(executableLine)
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}

// ParseConnections parses the plain netstat listing. The second non-empty line
// is the column header; the column set follows from it.
func ParseConnections(output string) (models.ConnectionTable, error) {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return models.ConnectionTable{}, sectionNotFound(labelConnectionList)
	}

	schema := resolveSchema(lines[1])
	if len(schema) == 0 {
		return models.ConnectionTable{}, sectionNotFound(labelConnectionList)
	}

	body := strings.Join(lines[2:], "\n")
	matches := rowPattern(schema).FindAllStringSubmatch(body, -1)

	rows := make([]models.ConnectionRow, 0, len(matches))
	hasComponent, hasExecutable := false, false
	for _, m := range matches {
		row := make(models.ConnectionRow, len(schema)+2)
		for i, c := range schema {
			row[c.name] = m[i+1]
		}

		component, executable := m[len(schema)+1], m[len(schema)+2]
		row[models.ColumnComponent] = component
		row[models.ColumnExecutable] = executable
		hasComponent = hasComponent || component != ""
		hasExecutable = hasExecutable || executable != ""

		rows = append(rows, row)
	}

	columns := make([]string, 0, len(schema)+2)
	for _, c := range schema {
		columns = append(columns, c.name)
	}
	if hasComponent {
		columns = append(columns, models.ColumnComponent)
	} else {
		dropColumn(rows, models.ColumnComponent)
	}
	if hasExecutable {
		columns = append(columns, models.ColumnExecutable)
	} else {
		dropColumn(rows, models.ColumnExecutable)
	}

	return models.ConnectionTable{Columns: columns, Rows: rows}, nil
}

func dropColumn(rows []models.ConnectionRow, name string) {
	for _, row := range rows {
		delete(row, name)
	}
}
