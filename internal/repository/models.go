package repository

// Models lists every row model this package owns, in dependency order, for
// schema migration.
func Models() []any {
	return []any{
		&userModel{},
		&professionalModel{},
		&requestModel{},
		&proposalModel{},
		&reviewModel{},
	}
}
