package domain

import "strings"

// Rule auto-assigns a category to any transaction whose concept contains
// Pattern. Patterns are stored uppercased; matching is plain substring
// containment, not regex, so users can edit them from a text box.
type Rule struct {
	ID         string
	Pattern    string
	CategoryID string
}

// Matches reports whether the rule's pattern occurs in the concept,
// case-insensitively.
func (r Rule) Matches(concept string) bool {
	return strings.Contains(strings.ToUpper(concept), strings.ToUpper(r.Pattern))
}

// PatternExists reports whether any rule in the slice matches the concept.
// Callers use it to decide whether to suggest creating a rule after a manual
// categorization.
func PatternExists(concept string, rules []Rule) bool {
	for _, rule := range rules {
		if rule.Matches(concept) {
			return true
		}
	}
	return false
}

type RuleRepository interface {
	Save(rule Rule) error
	FindByID(ruleID string) (*Rule, error)
	FindAll() ([]Rule, error)
}
