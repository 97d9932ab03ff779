// internal/syntax/database.go
package syntax

// Database is the ordered set of known rules. The most recently added rule
// comes first and wins selection ties. It is not safe for concurrent
// mutation; after Load it is only read.
type Database struct {
	rules []*Rule
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{}
}

// Prepend adds rule at the front of the selection order.
func (db *Database) Prepend(rule *Rule) {
	if rule == nil {
		return
	}
	db.rules = append([]*Rule{rule}, db.rules...)
}

// Rules returns the rules in selection order.
func (db *Database) Rules() []*Rule {
	return db.rules
}

// Len returns the number of rules.
func (db *Database) Len() int {
	return len(db.rules)
}

// Select returns the first rule matching filename, or nil.
func (db *Database) Select(filename string) *Rule {
	for _, r := range db.rules {
		if r.Matches(filename) {
			return r
		}
	}
	return nil
}

// Find returns the first rule with the given name (case-insensitive), or nil.
func (db *Database) Find(name string) *Rule {
	for _, r := range db.rules {
		if equalFold(r.Name, name) {
			return r
		}
	}
	return nil
}
