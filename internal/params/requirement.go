package params

// Requirement declares a field a method reads and the shape it expects.
type Requirement struct {
	Field string
	Kind  Kind
}

// Require builds a Requirement.
func Require(field string, kind Kind) Requirement {
	return Requirement{Field: field, Kind: kind}
}

// Check validates the set against reqs and returns one *FieldError per
// violation, in requirement order. A nil result means the set satisfies all
// of them.
func (p ParameterSet) Check(reqs ...Requirement) []*FieldError {
	var problems []*FieldError
	for _, r := range reqs {
		var err error
		switch r.Kind {
		case KindString:
			_, err = p.GetString(r.Field)
		case KindStrings:
			_, err = p.GetStrings(r.Field)
		case KindInt:
			_, err = p.GetInt(r.Field)
		case KindBool:
			_, err = p.GetBool(r.Field)
		default:
			if !p.Has(r.Field) {
				err = missing(r.Field, r.Kind)
			}
		}
		if fe, ok := err.(*FieldError); ok {
			fe.Want = r.Kind
			problems = append(problems, fe)
		}
	}
	return problems
}
