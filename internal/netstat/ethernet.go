package netstat

import (
	"fmt"
	"regexp"
	"strconv"

	"wincmd/internal/models"
)

const labelEthernetStatistics = "Interface Statistics"

var (
	ethernetBlockRe = regexp.MustCompile(`(?s)Interface Statistics(?:\r?\n)+(.*)`)
	// the last line ("Unknown protocols") carries a received count only
	ethernetRowRe = regexp.MustCompile(`(?m)^[ \t]*([\w-]+(?: [\w-]+)*)[ \t]{2,}(\d+)(?:[ \t]{2,}(\d+))?[ \t]*\r?$`)
)

// ParseEthernetStatistics parses netstat -e. A missing sent counter is reported as 0.
func ParseEthernetStatistics(output string) ([]models.EthernetStat, error) {
	m := ethernetBlockRe.FindStringSubmatch(output)
	if m == nil {
		return nil, sectionNotFound(labelEthernetStatistics)
	}

	matches := ethernetRowRe.FindAllStringSubmatch(m[1], -1)
	stats := make([]models.EthernetStat, 0, len(matches))
	for _, row := range matches {
		received, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("invalid received count for %q: %w", row[1], err)
		}

		sent := 0
		if row[3] != "" {
			sent, err = strconv.Atoi(row[3])
			if err != nil {
				return nil, fmt.Errorf("invalid sent count for %q: %w", row[1], err)
			}
		}

		stats = append(stats, models.EthernetStat{
			Interface: row[1],
			Received:  received,
			Sent:      sent,
		})
	}
	return stats, nil
}
