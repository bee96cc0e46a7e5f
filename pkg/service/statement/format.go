package statement

import "github.com/albahri/sarraf/pkg/domain/money"

// BalanceLabel maps a balance to its directional label. The numeric sign
// convention is fixed in the aggregator; only this formatting layer knows
// about labels, so screens can no longer disagree about polarity.
//
//	positive → "له"   (in the customer's favor, the shop owes them)
//	negative → "عليه" (the customer owes the shop)
func BalanceLabel(b money.Money) string {
	switch {
	case b.IsPositive():
		return "له"
	case b.IsNegative():
		return "عليه"
	default:
		return ""
	}
}

// Chunk splits statement lines into page-sized chunks: the first page holds
// first rows, subsequent pages hold rest rows. Purely a presentation helper
// for printed statements.
func Chunk(lines []Line, first, rest int) [][]Line {
	if len(lines) == 0 || first <= 0 || rest <= 0 {
		if len(lines) == 0 {
			return nil
		}
		return [][]Line{lines}
	}
	var pages [][]Line
	if len(lines) <= first {
		return [][]Line{lines}
	}
	pages = append(pages, lines[:first])
	for i := first; i < len(lines); i += rest {
		end := i + rest
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[i:end])
	}
	return pages
}
