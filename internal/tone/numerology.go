package tone

import (
	"fmt"
	"strconv"
)

// Digit meanings for the numerology block. Numbers above ten reduce to a
// root by repeated digit summing.
var numerologyMap = map[int]string{
	0:  "0 — Infinite potential, beginnings before form.",
	1:  "1 — Leadership, creation, individuality.",
	2:  "2 — Duality, partnership, balance, intuition.",
	3:  "3 — Creativity, joy, communication.",
	4:  "4 — Structure, discipline, foundation.",
	5:  "5 — Change, freedom, adaptability.",
	6:  "6 — Harmony, nurturing, love.",
	7:  "7 — Reflection, spirituality, wisdom.",
	8:  "8 — Power, success, mastery.",
	9:  "9 — Completion, compassion, release.",
	10: "10 — Wholeness, cycles, evolution.",
}

// numerologyText returns the display text for a card's number.
func numerologyText(num int) string {
	if num < 0 {
		return ""
	}
	if text, ok := numerologyMap[num]; ok {
		return text
	}
	reduced := digitSum(num)
	for reduced > 9 {
		reduced = digitSum(reduced)
	}
	return fmt.Sprintf("%d → %s", num, numerologyMap[reduced])
}

func digitSum(n int) int {
	sum := 0
	for _, d := range strconv.Itoa(n) {
		sum += int(d - '0')
	}
	return sum
}
