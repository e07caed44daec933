package seq

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// WriteGenbank writes a fragment as a GenBank record.
func WriteGenbank(w io.Writer, f Fragment, date time.Time) error {
	topology := "linear"
	if f.Circular {
		topology = "circular"
	}

	name := f.ID
	if name == "" {
		name = "assembly"
	}
	name = strings.ReplaceAll(name, " ", "_")

	h1 := fmt.Sprintf("LOCUS       %s", name)
	h2 := fmt.Sprintf("%d bp DNA      %-8s      %s\n", len(f.Seq), topology, strings.ToUpper(date.Format("02-Jan-2006")))
	space := " "
	if pad := 81 - len(h1+h2); pad > 0 {
		space = strings.Repeat(" ", pad)
	}

	var gb strings.Builder
	gb.WriteString(h1 + space + h2)
	gb.WriteString("DEFINITION  .\nACCESSION   .\nFEATURES             Location/Qualifiers\n")

	gb.WriteString("ORIGIN\n")
	s := strings.ToLower(f.Seq)
	for i := 0; i < len(s); i += 60 {
		n := strconv.Itoa(i + 1)
		gb.WriteString(strings.Repeat(" ", 9-len(n)) + n)
		for j := i; j < i+60 && j < len(s); j += 10 {
			e := j + 10
			if e > len(s) {
				e = len(s)
			}
			gb.WriteString(" " + s[j:e])
		}
		gb.WriteString("\n")
	}
	gb.WriteString("//\n")

	_, err := io.WriteString(w, gb.String())
	return err
}
