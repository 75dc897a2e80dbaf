package fogbugz

import (
	"strconv"
	"strings"
)

// orderByAxis is the reserved axis name for sort directives.
const orderByAxis = "OrderBy"

// OrBuilder accumulates clauses combined with OR inside one parenthesized
// group. Only plain terms, phrases and axis matches may appear in a group;
// negated, exact and nested-group clauses are not accepted.
type OrBuilder struct {
	components []searchComponent
}

// Term adds a free-text term to the OR group. Blank input is dropped.
func (b *OrBuilder) Term(term string) *OrBuilder {
	term = strings.TrimSpace(term)
	if term != "" {
		b.components = append(b.components, searchComponent{kind: kindTerm, text: term})
	}
	return b
}

// Phrase adds a quoted phrase to the OR group. Blank input is dropped.
func (b *OrBuilder) Phrase(phrase string) *OrBuilder {
	phrase = strings.TrimSpace(phrase)
	if phrase != "" {
		b.components = append(b.components, searchComponent{kind: kindPhrase, text: phrase})
	}
	return b
}

// Axis adds an axis match to the OR group. Dropped if either part is blank.
func (b *OrBuilder) Axis(axis, value string) *OrBuilder {
	axis = strings.TrimSpace(axis)
	value = strings.TrimSpace(value)
	if axis != "" && value != "" {
		b.components = append(b.components, searchComponent{kind: kindAxis, axis: axis, value: value})
	}
	return b
}

// AssignedTo adds an assignedto axis match to the OR group.
func (b *OrBuilder) AssignedTo(person string) *OrBuilder {
	return b.Axis("assignedto", person)
}

// ResolvedBy adds a resolvedby axis match to the OR group.
func (b *OrBuilder) ResolvedBy(person string) *OrBuilder {
	return b.Axis("resolvedby", person)
}

// EditedBy adds an editedby axis match to the OR group.
func (b *OrBuilder) EditedBy(person string) *OrBuilder {
	return b.Axis("editedby", person)
}

// SearchBuilder composes a FogBugz search query string. Clauses are
// implicitly AND-joined in insertion order; use Or to group alternatives.
// Blank or invalid input to any method is silently dropped, so every
// intermediate state renders to a valid query.
//
//	q := fogbugz.NewSearch().
//		Project("Widget Factory").
//		Status("Active").
//		OrderBy("Priority", false).
//		String()
type SearchBuilder struct {
	components []searchComponent
}

// NewSearch creates an empty search query builder.
func NewSearch() *SearchBuilder {
	return &SearchBuilder{}
}

// Term adds a free-text term.
func (b *SearchBuilder) Term(term string) *SearchBuilder {
	term = strings.TrimSpace(term)
	if term != "" {
		b.components = append(b.components, searchComponent{kind: kindTerm, text: term})
	}
	return b
}

// Phrase adds a multi-word literal, quoted and escaped as needed.
func (b *SearchBuilder) Phrase(phrase string) *SearchBuilder {
	phrase = strings.TrimSpace(phrase)
	if phrase != "" {
		b.components = append(b.components, searchComponent{kind: kindPhrase, text: phrase})
	}
	return b
}

// NegatedTerm adds a term excluded from results. A leading "-" on the
// input is stripped first so a pre-negated term never double-negates.
func (b *SearchBuilder) NegatedTerm(term string) *SearchBuilder {
	term = strings.TrimPrefix(strings.TrimSpace(term), "-")
	if term != "" {
		b.components = append(b.components, searchComponent{kind: kindNegatedTerm, text: term})
	}
	return b
}

// Axis adds a field-qualified match, e.g. Axis("project", "Widget") for
// project:Widget. The value is quoted and escaped as the grammar requires.
func (b *SearchBuilder) Axis(axis, value string) *SearchBuilder {
	axis = strings.TrimSpace(axis)
	value = strings.TrimSpace(value)
	if axis != "" && value != "" {
		b.components = append(b.components, searchComponent{kind: kindAxis, axis: axis, value: value})
	}
	return b
}

// NegatedAxis adds a field-qualified exclusion, e.g. -title:pear. A leading
// "-" on the axis name is stripped so the rendered clause carries exactly one.
func (b *SearchBuilder) NegatedAxis(axis, value string) *SearchBuilder {
	axis = strings.TrimPrefix(strings.TrimSpace(axis), "-")
	value = strings.TrimSpace(value)
	if axis != "" && value != "" {
		b.components = append(b.components, searchComponent{kind: kindNegatedAxis, axis: axis, value: value})
	}
	return b
}

// ExactAxis adds an exact-equality match using ":=", e.g. project:=1.
// The value is never auto-quoted.
func (b *SearchBuilder) ExactAxis(axis, value string) *SearchBuilder {
	axis = strings.TrimSpace(axis)
	value = strings.TrimSpace(value)
	if axis != "" && value != "" {
		b.components = append(b.components, searchComponent{kind: kindExactAxis, axis: axis, value: value})
	}
	return b
}

// Or adds a parenthesized group of OR-joined clauses. The callback receives
// an empty OrBuilder and returns the populated one. A group whose every
// clause was dropped contributes nothing to the query.
//
//	b.Or(func(or *fogbugz.OrBuilder) *fogbugz.OrBuilder {
//		return or.AssignedTo("Alice").AssignedTo("Bob")
//	})
func (b *SearchBuilder) Or(build func(or *OrBuilder) *OrBuilder) *SearchBuilder {
	if build == nil {
		return b
	}
	group := build(&OrBuilder{})
	if group != nil && len(group.components) > 0 {
		b.components = append(b.components, searchComponent{kind: kindOrGroup, children: group.components})
	}
	return b
}

// Project adds a project:<name> axis match.
func (b *SearchBuilder) Project(name string) *SearchBuilder {
	return b.Axis("project", name)
}

// ProjectID adds a project:=<id> exact match.
func (b *SearchBuilder) ProjectID(id uint64) *SearchBuilder {
	return b.ExactAxis("project", strconv.FormatUint(id, 10))
}

// AssignedTo adds an assignedto:<person> axis match.
func (b *SearchBuilder) AssignedTo(person string) *SearchBuilder {
	return b.Axis("assignedto", person)
}

// OpenedBy adds an openedby:<person> axis match.
func (b *SearchBuilder) OpenedBy(person string) *SearchBuilder {
	return b.Axis("openedby", person)
}

// EditedBy adds an editedby:<person> axis match. Combine with AlsoEditedBy
// to require multiple editors.
func (b *SearchBuilder) EditedBy(person string) *SearchBuilder {
	return b.Axis("editedby", person)
}

// AlsoEditedBy adds an alsoeditedby:<person> axis match.
func (b *SearchBuilder) AlsoEditedBy(person string) *SearchBuilder {
	return b.Axis("alsoeditedby", person)
}

// ResolvedBy adds a resolvedby:<person> axis match.
func (b *SearchBuilder) ResolvedBy(person string) *SearchBuilder {
	return b.Axis("resolvedby", person)
}

// Status adds a status:<name> axis match.
func (b *SearchBuilder) Status(status string) *SearchBuilder {
	return b.Axis("status", status)
}

// Tag adds a tag:<name> axis match.
func (b *SearchBuilder) Tag(tag string) *SearchBuilder {
	return b.Axis("tag", tag)
}

// TagWildcard adds a prefix tag search, e.g. tag:mo*. A trailing "*" is
// appended when the pattern does not already end with one.
func (b *SearchBuilder) TagWildcard(pattern string) *SearchBuilder {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return b
	}
	if !strings.HasSuffix(pattern, "*") {
		pattern += "*"
	}
	return b.Axis("tag", pattern)
}

// Type adds a type:<kind> axis match ("case", "wiki", "discuss").
func (b *SearchBuilder) Type(kind string) *SearchBuilder {
	return b.Axis("type", kind)
}

// CaseNumber adds an ixBug:<id> axis match.
func (b *SearchBuilder) CaseNumber(id uint64) *SearchBuilder {
	return b.Axis("ixBug", strconv.FormatUint(id, 10))
}

// EditedDate adds an edited:<when> axis match. The value is any date
// expression the server accepts: "today", "March 2007", "-1w..today".
func (b *SearchBuilder) EditedDate(when string) *SearchBuilder {
	return b.Axis("edited", when)
}

// OpenedDate adds an opened:<when> axis match.
func (b *SearchBuilder) OpenedDate(when string) *SearchBuilder {
	return b.Axis("opened", when)
}

// ResolvedDate adds a resolved:<when> axis match.
func (b *SearchBuilder) ResolvedDate(when string) *SearchBuilder {
	return b.Axis("resolved", when)
}

// ClosedDate adds a closed:<when> axis match.
func (b *SearchBuilder) ClosedDate(when string) *SearchBuilder {
	return b.Axis("closed", when)
}

// DueDate adds a due:<when> axis match.
func (b *SearchBuilder) DueDate(when string) *SearchBuilder {
	return b.Axis("due", when)
}

// HasAxis matches items having any value for the axis, e.g. tag:*.
func (b *SearchBuilder) HasAxis(axis string) *SearchBuilder {
	return b.Axis(axis, "*")
}

// MissingAxis matches items lacking a value for the axis, e.g. -due:*.
func (b *SearchBuilder) MissingAxis(axis string) *SearchBuilder {
	return b.NegatedAxis(axis, "*")
}

// OrderBy adds an OrderBy:<axis> sort directive. Call repeatedly for
// secondary sort keys. Descending directives render as OrderBy:"-<axis>";
// the leading "-" is what triggers quoting, ascending values stay bare.
func (b *SearchBuilder) OrderBy(axis string, descending bool) *SearchBuilder {
	axis = strings.TrimSpace(axis)
	if axis == "" {
		return b
	}
	value := axis
	if descending {
		value = "-" + axis
	}
	b.components = append(b.components, searchComponent{kind: kindAxis, axis: orderByAxis, value: value})
	return b
}

// String renders the query: every clause in insertion order, joined by
// single spaces. Rendering never mutates the builder, so it may be called
// repeatedly and interleaved with further appends.
func (b *SearchBuilder) String() string {
	parts := make([]string, 0, len(b.components))
	for _, c := range b.components {
		if s := c.stringify(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
