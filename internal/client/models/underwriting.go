package models

import (
	"fmt"
	"strings"
)

// UnderwritingResult is the remote service's decision for one loan.
type UnderwritingResult struct {
	Decision string   `json:"decision"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

func (u UnderwritingResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Decision: %s\nScore: %g/100", u.Decision, u.Score)
	if len(u.Reasons) > 0 {
		b.WriteString("\nReasons:")
		for _, r := range u.Reasons {
			b.WriteString("\n  - " + r)
		}
	}
	return b.String()
}
