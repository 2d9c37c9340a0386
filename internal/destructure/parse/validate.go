package parse

import (
	"errors"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
)

// Validate checks every record for companion-level naming collisions and
// builds its field registry. The registry is insertion-ordered and keyed by
// the companion field name, so it guarantees by construction what the
// synthesizers rely on: companion field order is declaration order, and each
// companion name maps to exactly one field. A record with a collision gets no
// registry and stays unvalidated.
func (p *Parser) Validate(recs []*Record) error {
	var errs error
	for _, rec := range recs {
		errs = errors.Join(errs, p.validateFields(rec))
	}
	return errs
}

func (p *Parser) validateFields(rec *Record) error {
	var errs error

	registry := linkedhashmap.New()
	for _, f := range rec.Fields {
		prev, ok := registry.Get(f.Exported)
		if ok {
			err := codefmt.Errorf(p, f, "field %s collides with field %s as %s: %w",
				f.Name, prev.(Field).Name, f.Exported, ErrNamingCollision)
			errs = errors.Join(errs, err)
			continue
		}
		registry.Put(f.Exported, f)
	}
	if errs != nil {
		return errs
	}

	rec.registry = registry
	return nil
}
