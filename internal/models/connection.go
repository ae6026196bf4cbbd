package models

// Column names as printed in the header line of netstat's connection list.
const (
	ColumnProto          = "Proto"
	ColumnLocalAddress   = "Local Address"
	ColumnForeignAddress = "Foreign Address"
	ColumnState          = "State"
	ColumnPID            = "PID"
	ColumnTimeInState    = "Time in State (ms)"
	ColumnOffloadState   = "Offload State"
	ColumnTemplate       = "Template"
	ColumnComponent      = "Component"
	ColumnExecutable     = "Executable"
)

// ConnectionRow maps column name to the raw text captured for it.
type ConnectionRow map[string]string

func (r ConnectionRow) Get(column string) string {
	return r[column]
}

// ConnectionTable is the parsed connection list. Columns depends on the flags
// netstat was run with and is discovered from the output itself.
type ConnectionTable struct {
	Columns []string        `json:"columns"`
	Rows    []ConnectionRow `json:"rows"`
}

func (t ConnectionTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns every row's value for one column, in row order.
func (t ConnectionTable) Column(name string) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}

type ProcessPorts struct {
	PID   int    `json:"pid"`
	Name  string `json:"name,omitempty"`
	Ports []int  `json:"ports"`
}
