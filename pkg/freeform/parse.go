package freeform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/freeform/pkg/keywords"
	"github.com/mesh-intelligence/freeform/pkg/obj"
)

// LineSource supplies lines to Parse. Peek returns the next line without
// consuming it and false at end of input; Skip consumes it. *obj.Reader
// satisfies LineSource.
type LineSource interface {
	Peek() (obj.Line, bool)
	Skip()
}

// VAxisPolicy decides what a "bmat v" statement does to a curve matrix.
type VAxisPolicy int

const (
	// VAxisUpgrade turns the curve matrix into a surface that keeps its U
	// axis. Any disagreement with the degree is left to Validate.
	VAxisUpgrade VAxisPolicy = iota
	// VAxisReject fails the statement with ErrCurveSurfaceMismatch when the
	// degree already read is a curve.
	VAxisReject
)

var vAxisPolicyNames = map[VAxisPolicy]string{
	VAxisUpgrade: "upgrade",
	VAxisReject:  "reject",
}

func (p VAxisPolicy) String() string {
	if name, ok := vAxisPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("VAxisPolicy(%d)", int(p))
}

// ParseVAxisPolicy maps "upgrade" or "reject" to a policy.
func ParseVAxisPolicy(s string) (VAxisPolicy, error) {
	for p, name := range vAxisPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: v axis policy %q", ErrInvalidKeyword, s)
}

type parseConfig struct {
	policy VAxisPolicy
	logger *slog.Logger
	base   *Definition
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

// WithVAxisPolicy sets the policy for "bmat v" on a curve matrix.
func WithVAxisPolicy(p VAxisPolicy) ParseOption {
	return func(c *parseConfig) { c.policy = p }
}

// WithLogger traces every consumed statement at debug level.
func WithLogger(l *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBase starts the fold from an existing definition instead of from
// nothing. OBJ free-form attributes are state: a file may change only the
// degree between two curves and keep the type from before.
func WithBase(def Definition) ParseOption {
	return func(c *parseConfig) { c.base = &def }
}

// Parse folds free-form attribute statements from src into a Definition.
//
// Blank and comment-only lines are consumed. Parsing stops at end of input or
// at the first statement that is not cstype, deg, bmat or step; that line is
// left in src. On a structural error Parse also leaves the failing line in
// src so the caller can report its position.
//
// Parse does not call Validate.
func Parse(src LineSource, opts ...ParseOption) (Definition, error) {
	cfg := parseConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	var st parseState
	if cfg.base != nil {
		st = parseState{def: *cfg.base, hasType: true, hasDegree: true}
	}

	for {
		line, ok := src.Peek()
		if !ok {
			break
		}
		if !line.HasKeyword() {
			src.Skip()
			continue
		}

		var err error
		switch line.Keyword {
		case keywords.CurveSurfaceType:
			err = st.cstype(line.Params)
		case keywords.Degree:
			err = st.degree(line.Params)
		case keywords.BasisMatrix:
			err = st.bmat(line.Params, cfg.policy)
		case keywords.StepSize:
			err = st.step(line.Params)
		default:
			return st.finish()
		}
		if err != nil {
			return Definition{}, fmt.Errorf("%s: %w", line.Keyword, err)
		}
		cfg.logger.Debug("free-form statement",
			"line", line.Number, "keyword", line.Keyword, "params", len(line.Params))
		src.Skip()
	}
	return st.finish()
}

type parseState struct {
	def       Definition
	hasType   bool
	hasDegree bool
}

func (s *parseState) cstype(params []string) error {
	var (
		typ      FreeFormType
		found    bool
		rational bool
	)
	for _, tok := range params {
		if tok == keywords.Rational {
			rational = true
			continue
		}
		t, err := ParseFreeFormType(tok)
		if err != nil || found {
			return fmt.Errorf("%w: unexpected %q", ErrInvalidParameters, tok)
		}
		typ, found = t, true
	}
	if !found {
		return fmt.Errorf("%w: no curve or surface type", ErrMissingKeyword)
	}
	s.def.Type, s.def.Rational, s.hasType = typ, rational, true
	return nil
}

func (s *parseState) degree(params []string) error {
	d, err := ParseDegree(params)
	if err != nil {
		return err
	}
	s.def.Degree, s.hasDegree = d, true
	return nil
}

func (s *parseState) bmat(params []string, policy VAxisPolicy) error {
	attrs, err := s.attributes(keywords.BasisMatrix)
	if err != nil {
		return err
	}
	if len(params) == 0 {
		return fmt.Errorf("%w: missing axis", ErrInvalidParameters)
	}
	axis := params[0]
	if !keywords.IsBasisAxis(axis) {
		return fmt.Errorf("%w: basis matrix axis %q", ErrInvalidKeyword, axis)
	}
	values, err := parseFloats(params[1:])
	if err != nil {
		return err
	}

	if axis == keywords.AxisU {
		attrs = attrs.WithMatrixU(values)
	} else {
		if policy == VAxisReject && s.hasDegree && s.def.Degree.IsCurve() {
			return fmt.Errorf("%w: v axis for curve degree %s", ErrCurveSurfaceMismatch, s.def.Degree)
		}
		attrs = attrs.WithMatrixV(values)
	}
	s.def.Type = BasisMatrixType(attrs)
	return nil
}

func (s *parseState) step(params []string) error {
	attrs, err := s.attributes(keywords.StepSize)
	if err != nil {
		return err
	}
	toks, err := stepTokens(params)
	if err != nil {
		return err
	}
	values, err := parseUints(toks)
	if err != nil {
		return err
	}
	if attrs, err = attrs.WithStep(values); err != nil {
		return err
	}
	s.def.Type = BasisMatrixType(attrs)
	return nil
}

// attributes returns the in-progress basis matrix attributes, or
// ErrInvalidFormType if the current type cannot carry them.
func (s *parseState) attributes(stmt string) (BasisMatrixAttributes, error) {
	if !s.hasType {
		return BasisMatrixAttributes{}, fmt.Errorf("%w: %s before %s",
			ErrInvalidFormType, stmt, keywords.CurveSurfaceType)
	}
	attrs, ok := s.def.Type.Attributes()
	if !ok {
		return BasisMatrixAttributes{}, fmt.Errorf("%w: %s in a %s definition",
			ErrInvalidFormType, stmt, s.def.Type)
	}
	return attrs, nil
}

func (s parseState) finish() (Definition, error) {
	switch {
	case !s.hasType:
		return Definition{}, fmt.Errorf("%w: no %s", ErrMalformedDefinition, keywords.CurveSurfaceType)
	case !s.hasDegree:
		return Definition{}, fmt.Errorf("%w: no %s", ErrMalformedDefinition, keywords.Degree)
	}
	return s.def, nil
}

// stepTokens strips the optional axis labels of "step u n [v m]", returning
// plain "n [m]" tokens. Unlabelled parameters pass through unchanged.
func stepTokens(params []string) ([]string, error) {
	if len(params) == 0 || params[0] != keywords.AxisU {
		return params, nil
	}
	switch {
	case len(params) == 2:
		return params[1:], nil
	case len(params) == 4 && params[2] == keywords.AxisV:
		return []string{params[1], params[3]}, nil
	}
	return nil, fmt.Errorf("%w: labelled step %q", ErrInvalidParameters, strings.Join(params, " "))
}
