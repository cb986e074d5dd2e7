package model

import (
	"net/url"
	"strings"
)

// ParamKind tags the shape a request parameter arrived in.
type ParamKind int

const (
	ParamAbsent ParamKind = iota
	ParamScalar
	ParamList
)

// Param is a loosely-typed request value: absent, a single string, or a list.
type Param struct {
	Kind   ParamKind
	Values []string
}

// Scalar returns a single-valued Param.
func Scalar(v string) Param { return Param{Kind: ParamScalar, Values: []string{v}} }

// List returns a multi-valued Param.
func List(vs ...string) Param { return Param{Kind: ParamList, Values: vs} }

// RawParams maps parameter names to their raw values. Missing keys are absent.
type RawParams map[string]Param

// ParamsFromQuery converts URL query values. A key given once is a scalar,
// a repeated key is a list.
func ParamsFromQuery(q url.Values) RawParams {
	params := make(RawParams, len(q))
	for key, vs := range q {
		switch len(vs) {
		case 0:
		case 1:
			params[key] = Scalar(vs[0])
		default:
			params[key] = List(vs...)
		}
	}
	return params
}

// Get returns the param for key, or an absent Param.
func (p RawParams) Get(key string) Param {
	if v, ok := p[key]; ok {
		return v
	}
	return Param{}
}

// first returns the first trimmed value of key. Empty values count as absent.
func (p RawParams) first(key string) (string, bool) {
	param := p.Get(key)
	if param.Kind == ParamAbsent || len(param.Values) == 0 {
		return "", false
	}
	v := strings.TrimSpace(param.Values[0])
	if v == "" {
		return "", false
	}
	return v, true
}

// list flattens key into trimmed, non-empty strings. A scalar is split on
// commas; list items are taken as given.
func (p RawParams) list(key string) []string {
	param := p.Get(key)
	var raw []string
	switch param.Kind {
	case ParamScalar:
		if len(param.Values) > 0 {
			raw = strings.Split(param.Values[0], ",")
		}
	case ParamList:
		raw = param.Values
	}

	var out []string
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
