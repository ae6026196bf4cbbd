package netstat

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"wincmd/internal/models"
)

func TestParseStatisticsSingleRow(t *testing.T) {
	output := "TCP Statistics for IPv4\r\n  Active Opens                    = 5\r\n\r\n"

	rows, err := ParseStatistics(output, SectionTCPv4)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []models.StatRow{{Header: "Active Opens", Value: 5}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %+v, got %+v", want, rows)
	}
}

func TestParseStatisticsRowCount(t *testing.T) {
	for _, n := range []int{1, 2, 7, 25} {
		var b strings.Builder
		b.WriteString("UDP Statistics for IPv6\r\n\r\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "  Counter Number %d          = %d\r\n", i, i*1000)
		}
		b.WriteString("\r\n")

		rows, err := ParseStatistics(b.String(), SectionUDPv6)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(rows) != n {
			t.Fatalf("n=%d: got %d rows", n, len(rows))
		}
		for i, row := range rows {
			if row.Header != fmt.Sprintf("Counter Number %d", i) || row.Value != i*1000 {
				t.Fatalf("n=%d: unexpected row %d: %+v", n, i, row)
			}
		}
	}
}

func TestParsePerProtocolStatistics(t *testing.T) {
	tables, err := ParsePerProtocolStatistics(statisticsOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantLens := map[string]int{
		SectionIPv4: 3, SectionIPv6: 2, SectionICMPv4: 3, SectionICMPv6: 1,
		SectionTCPv4: 3, SectionTCPv6: 1, SectionUDPv4: 2, SectionUDPv6: 1,
	}
	if len(tables) != len(wantLens) {
		t.Fatalf("expected %d tables, got %d", len(wantLens), len(tables))
	}
	for key, want := range wantLens {
		if got := tables[key].Len(); got != want {
			t.Fatalf("%s: expected %d rows, got %d", key, want, got)
		}
	}

	if got := tables[SectionIPv4].Rows[0]; got != (models.StatRow{Header: "Packets Received", Value: 1234567}) {
		t.Fatalf("unexpected first IPv4 row %+v", got)
	}
	if got := tables[SectionICMPv4].DualRows[2]; got != (models.DualStatRow{Header: "Echo Replies", Received: 10, Sent: 2}) {
		t.Fatalf("unexpected ICMPv4 row %+v", got)
	}
	if got := tables[SectionUDPv4].Rows[1]; got != (models.StatRow{Header: "No Ports", Value: 4}) {
		t.Fatalf("unexpected UDPv4 row %+v", got)
	}
}

func TestParseProtocolStatistics(t *testing.T) {
	tests := []struct {
		protocol Protocol
		header   string
		dual     bool
	}{
		{ProtocolTCP, "Active Opens", false},
		{ProtocolTCPv6, "Active Opens", false},
		{ProtocolUDP, "Datagrams Received", false},
		{ProtocolUDPv6, "Datagrams Received", false},
		{ProtocolIP, "Packets Received", false},
		{ProtocolIPv6, "Packets Received", false},
		{ProtocolICMP, "Messages", true},
		{ProtocolICMPv6, "Messages", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.protocol), func(t *testing.T) {
			table, err := ParseProtocolStatistics(statisticsOutput, tt.protocol)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			var header string
			if tt.dual {
				header = table.DualRows[0].Header
			} else {
				header = table.Rows[0].Header
			}
			if header != tt.header {
				t.Fatalf("expected first header %q, got %q", tt.header, header)
			}
		})
	}
}

func TestParseProtocolStatisticsRejectsUnknownProtocol(t *testing.T) {
	_, err := ParseProtocolStatistics(statisticsOutput, Protocol("SCTP"))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "SCTP") || !strings.Contains(err.Error(), "ICMPv6") {
		t.Fatalf("error should name the value and the allowed set: %v", err)
	}
}

func TestStatisticsMissingSection(t *testing.T) {
	for _, s := range statisticsSections {
		t.Run(s.key, func(t *testing.T) {
			output := strings.Replace(statisticsOutput, s.label, "Something Else", 1)
			_, err := s.parse(output)
			if !errors.Is(err, ErrSectionNotFound) {
				t.Fatalf("expected ErrSectionNotFound, got %v", err)
			}
			var notFound *SectionNotFoundError
			if !errors.As(err, &notFound) || notFound.Section != s.label {
				t.Fatalf("expected section %q in error, got %v", s.label, err)
			}

			if _, err := ParsePerProtocolStatistics(output); !errors.Is(err, ErrSectionNotFound) {
				t.Fatalf("expected all-sections parse to fail, got %v", err)
			}
		})
	}
}

func TestParseStatisticsWrongShape(t *testing.T) {
	if _, err := ParseStatistics(statisticsOutput, SectionICMPv4); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for dual section, got %v", err)
	}
	if _, err := ParseDualStatistics(statisticsOutput, SectionTCPv4); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for single section, got %v", err)
	}
	if _, err := ParseStatistics(statisticsOutput, "SCTPv4"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for unknown section, got %v", err)
	}
}

func TestParsePerProtocolStatisticsIdempotent(t *testing.T) {
	first, err := ParsePerProtocolStatistics(statisticsOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := ParsePerProtocolStatistics(statisticsOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing the same output twice gave different tables")
	}
}
