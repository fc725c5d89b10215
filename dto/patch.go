package dto

import (
	"strings"

	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// patch collects the keys present in an update body into a $set document.
// A present key is written even when it holds a zero value.
type patch struct {
	set bson.M
	err error
}

func newPatch() *patch { return &patch{set: bson.M{}} }

func (p *patch) text(key string, v *string, required bool) *patch {
	if p.err != nil || v == nil {
		return p
	}
	s := strings.TrimSpace(*v)
	if required && s == "" {
		p.err = utils.NewValidationError("%s cannot be empty", key)
		return p
	}
	p.set[key] = s
	return p
}

func (p *patch) list(key string, v *[]string) *patch {
	if p.err != nil || v == nil {
		return p
	}
	list := *v
	if list == nil {
		list = []string{}
	}
	p.set[key] = list
	return p
}

func value[T any](p *patch, key string, v *T) {
	if p.err != nil || v == nil {
		return
	}
	p.set[key] = *v
}

func (p *patch) done() (bson.M, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.set, nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
