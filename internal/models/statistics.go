package models

// StatRow is one "Header = Value" line of a netstat -s section.
type StatRow struct {
	Header string `json:"header"`
	Value  int    `json:"value"`
}

// DualStatRow is one line of an ICMP section, which reports received and sent counters side by side.
type DualStatRow struct {
	Header   string `json:"header"`
	Received int    `json:"received"`
	Sent     int    `json:"sent"`
}

// StatisticsTable holds exactly one of Rows or DualRows depending on the section.
type StatisticsTable struct {
	Rows     []StatRow     `json:"rows,omitempty"`
	DualRows []DualStatRow `json:"dual_rows,omitempty"`
}

func (t StatisticsTable) Len() int {
	if t.DualRows != nil {
		return len(t.DualRows)
	}
	return len(t.Rows)
}

type EthernetStat struct {
	Interface string `json:"interface"`
	Received  int    `json:"received"`
	Sent      int    `json:"sent"`
}
