package filter

import (
	"fmt"
	"strconv"
)

// Describe returns the human-readable labels of the active constraints of
// spec, in the order they appear on the results header.
func Describe(spec Spec) []string {
	var labels []string

	if spec.Search != "" {
		labels = append(labels, "Поиск: \""+spec.Search+"\"")
	}

	inCycle, cycleHasTitle := spec.Type.cycleConstraint()
	if inCycle != nil {
		if *inCycle {
			labels = append(labels, "В циклах")
		} else {
			labels = append(labels, "Отдельные стихи")
		}
	}
	if cycleHasTitle != nil {
		if *cycleHasTitle {
			labels = append(labels, "Циклы с названиями")
		} else {
			labels = append(labels, "Циклы без названий")
		}
	}

	if spec.Section != "" {
		labels = append(labels, "Раздел: "+spec.Section)
	}

	if spec.MinLines != nil || spec.MaxLines != nil {
		min, max := "0", "∞"
		if spec.MinLines != nil {
			min = strconv.Itoa(*spec.MinLines)
		}
		if spec.MaxLines != nil {
			max = strconv.Itoa(*spec.MaxLines)
		}
		labels = append(labels, "Строк: "+min+"-"+max)
	}

	if spec.HasEpigraph {
		labels = append(labels, "С эпиграфами")
	}
	if spec.HasDedication {
		labels = append(labels, "С посвящениями")
	}

	return labels
}

// FoundPhrase renders the result counter with the noun agreeing in number.
func FoundPhrase(n int) string {
	return fmt.Sprintf("Найдено: %d %s", n, poemNoun(n))
}

func poemNoun(n int) string {
	if n < 0 {
		n = -n
	}
	switch mod10, mod100 := n%10, n%100; {
	case mod10 == 1 && mod100 != 11:
		return "стихотворение"
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return "стихотворения"
	default:
		return "стихотворений"
	}
}
