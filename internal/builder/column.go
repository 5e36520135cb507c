package builder

// ColumnBuilder mutates one column draft. All validation here is local;
// cross-column invariants (name uniqueness) are checked at finalization.
type ColumnBuilder struct {
	base
	root  *ProjectBuilder
	draft *draftColumn
}

// ID returns the identifier allocated for this column.
func (b *ColumnBuilder) ID() string {
	return b.id
}

// Name sets the column name.
func (b *ColumnBuilder) Name(value string) *ColumnBuilder {
	if !b.root.open() {
		return b
	}
	b.draft.name = value
	b.nonEmpty(value, "column.name")
	return b
}

// AsBacklog marks the column as the project's backlog. It is a purely
// documentary label: it stores nothing and never records a defect, even
// when the column is not actually named "backlog".
func (b *ColumnBuilder) AsBacklog() *ColumnBuilder {
	return b
}
