// Package keywords is the static catalogue of Wavefront OBJ statement keywords
// and the compliance tables built from it.
//
// The tables are read-only. Consumers receive them through the pure lookup
// functions in this file rather than by touching the maps directly.
package keywords

// Comment marker. Everything after it on a physical line is a comment.
const Comment = "#"

// Vertex data.
const (
	Vertex               = "v"
	TextureCoordinate    = "vt"
	VertexNormal         = "vn"
	ParameterSpaceVertex = "vp"
)

// Free-form curve/surface attributes.
const (
	CurveSurfaceType = "cstype"
	Degree           = "deg"
	BasisMatrix      = "bmat"
	StepSize         = "step"
)

// Elements.
const (
	Point   = "p"
	Line    = "l"
	Face    = "f"
	Curve   = "curv"
	Curve2D = "curv2"
	Surface = "surf"
)

// Free-form curve/surface body statements.
const (
	ParameterValue = "parm"
	OuterTrimLoop  = "trim"
	InnerTrimLoop  = "hole"
	SpecialCurve   = "scrv"
	SpecialPoint   = "sp"
	End            = "end"
)

// Connectivity between free-form surfaces.
const Connection = "con"

// Grouping.
const (
	GroupName      = "g"
	SmoothingGroup = "s"
	MergingGroup   = "mg"
	ObjectName     = "o"
)

// Display/render attributes.
const (
	BevelInterpolation    = "bevel"
	ColorInterpolation    = "c_interp"
	DissolveInterpolation = "d_interp"
	LevelOfDetail         = "lod"
	MapLibrary            = "maplib"
	UseMap                = "usemap"
	MaterialName          = "usemtl"
	MaterialLibrary       = "mtllib"
	ShadowCasting         = "shadow_obj"
	RayTracing            = "trace_obj"
	CurveApproximation    = "ctech"
	SurfaceApproximation  = "stech"
)

// Free-form curve/surface approximation techniques. The curvature dependent
// technique reuses the "curv" token.
const (
	ConstantParametricSubdivision             = "cparm"
	ConstantSpatialSubdivision                = "cspace"
	CurvatureDependentSubdivision             = Curve
	ConstantParametricSubdivisionSurfaceMulti = "cparma"
	ConstantParametricSubdivisionSurfaceOne   = "cparmb"
)

// Second-level tokens of cstype and bmat.
const (
	Rational = "rat"

	CurveTypeBasisMatrix = "bmatrix"
	CurveTypeBezier      = "bezier"
	CurveTypeBSpline     = "bspline"
	CurveTypeCardinal    = "cardinal"
	CurveTypeTaylor      = "taylor"

	AxisU = "u"
	AxisV = "v"
)

// Class groups keywords by the part of the format they belong to.
type Class int

const (
	ClassUnknown Class = iota
	ClassVertexData
	ClassFreeFormAttribute
	ClassElement
	ClassFreeFormBody
	ClassConnectivity
	ClassGrouping
	ClassDisplayRender
	ClassApproximationTechnique
	ClassSecondLevel
)

var classNames = map[Class]string{
	ClassUnknown:                "unknown",
	ClassVertexData:             "vertex data",
	ClassFreeFormAttribute:      "free-form attribute",
	ClassElement:                "element",
	ClassFreeFormBody:           "free-form body",
	ClassConnectivity:           "connectivity",
	ClassGrouping:               "grouping",
	ClassDisplayRender:          "display/render attribute",
	ClassApproximationTechnique: "approximation technique",
	ClassSecondLevel:            "second-level token",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return classNames[ClassUnknown]
}

// statementClasses maps statement keywords (the first token on a line) to
// their class. Tokens such as "cparm" that only appear as parameters are kept
// in their own tables below.
var statementClasses = map[string]Class{
	Vertex:               ClassVertexData,
	TextureCoordinate:    ClassVertexData,
	VertexNormal:         ClassVertexData,
	ParameterSpaceVertex: ClassVertexData,

	CurveSurfaceType: ClassFreeFormAttribute,
	Degree:           ClassFreeFormAttribute,
	BasisMatrix:      ClassFreeFormAttribute,
	StepSize:         ClassFreeFormAttribute,

	Point:   ClassElement,
	Line:    ClassElement,
	Face:    ClassElement,
	Curve:   ClassElement,
	Curve2D: ClassElement,
	Surface: ClassElement,

	ParameterValue: ClassFreeFormBody,
	OuterTrimLoop:  ClassFreeFormBody,
	InnerTrimLoop:  ClassFreeFormBody,
	SpecialCurve:   ClassFreeFormBody,
	SpecialPoint:   ClassFreeFormBody,
	End:            ClassFreeFormBody,

	Connection: ClassConnectivity,

	GroupName:      ClassGrouping,
	SmoothingGroup: ClassGrouping,
	MergingGroup:   ClassGrouping,
	ObjectName:     ClassGrouping,

	BevelInterpolation:    ClassDisplayRender,
	ColorInterpolation:    ClassDisplayRender,
	DissolveInterpolation: ClassDisplayRender,
	LevelOfDetail:         ClassDisplayRender,
	MapLibrary:            ClassDisplayRender,
	UseMap:                ClassDisplayRender,
	MaterialName:          ClassDisplayRender,
	MaterialLibrary:       ClassDisplayRender,
	ShadowCasting:         ClassDisplayRender,
	RayTracing:            ClassDisplayRender,
	CurveApproximation:    ClassDisplayRender,
	SurfaceApproximation:  ClassDisplayRender,
}

// curveTypes is the set of basis kinds accepted by cstype.
var curveTypes = map[string]bool{
	CurveTypeBasisMatrix: true,
	CurveTypeBezier:      true,
	CurveTypeBSpline:     true,
	CurveTypeCardinal:    true,
	CurveTypeTaylor:      true,
}

// basisAxes is the set of axis selectors accepted by bmat.
var basisAxes = map[string]bool{
	AxisU: true,
	AxisV: true,
}

// approximationTechniques is the set of ctech/stech technique tokens.
var approximationTechniques = map[string]bool{
	ConstantParametricSubdivision:             true,
	ConstantSpatialSubdivision:                true,
	CurvatureDependentSubdivision:             true,
	ConstantParametricSubdivisionSurfaceMulti: true,
	ConstantParametricSubdivisionSurfaceOne:   true,
}

// Lookup returns the class of a statement keyword. The boolean is false for
// words that are not OBJ statement keywords.
func Lookup(word string) (Class, bool) {
	c, ok := statementClasses[word]
	return c, ok
}

// IsKeyword reports whether word is any recognized OBJ token: a statement
// keyword, a curve type, a basis axis, an approximation technique or the
// rational flag.
func IsKeyword(word string) bool {
	if _, ok := statementClasses[word]; ok {
		return true
	}
	return curveTypes[word] || basisAxes[word] || approximationTechniques[word] || word == Rational
}

// IsCurveType reports whether word names a cstype basis kind.
func IsCurveType(word string) bool {
	return curveTypes[word]
}

// IsBasisAxis reports whether word is a bmat axis selector.
func IsBasisAxis(word string) bool {
	return basisAxes[word]
}

// IsApproximationTechnique reports whether word is a ctech/stech technique.
func IsApproximationTechnique(word string) bool {
	return approximationTechniques[word]
}

// IsDisplayRenderAttribute reports whether word is a display/render statement.
func IsDisplayRenderAttribute(word string) bool {
	return statementClasses[word] == ClassDisplayRender
}

// CurveTypes returns the cstype basis kinds in declaration order.
func CurveTypes() []string {
	return []string{
		CurveTypeBasisMatrix,
		CurveTypeBezier,
		CurveTypeBSpline,
		CurveTypeCardinal,
		CurveTypeTaylor,
	}
}
