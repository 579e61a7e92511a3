package catalog

// Namespace URLs used during HTML parsing.
const (
	NamespaceHTML = "http://www.w3.org/1999/xhtml"
	NamespaceSVG = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceXML = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS = "http://www.w3.org/2000/xmlns/"
)

// ForeignAttribute describes how a foreign (namespaced) attribute should be
// split into prefix/local-name/namespace-URI on adjustment.
type ForeignAttribute struct {
	Prefix string
	LocalName string
	NamespaceURL string
}

// SVGTagNameAdjustments maps lowercase SVG tag names to their camelCase
// surface form, applied when entering the SVG namespace.
var SVGTagNameAdjustments = map[string]string{
	"altglyph": "altGlyph", "altglyphdef": "altGlyphDef", "altglyphitem": "altGlyphItem",
	"animatecolor": "animateColor", "animatemotion": "animateMotion", "animatetransform": "animateTransform",
	"clippath": "clipPath", "feblend": "feBlend", "fecolormatrix": "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer", "fecomposite": "feComposite",
	"feconvolvematrix": "feConvolveMatrix", "fediffuselighting": "feDiffuseLighting",
	"fedisplacementmap": "feDisplacementMap", "fedistantlight": "feDistantLight",
	"feflood": "feFlood", "fefunca": "feFuncA", "fefuncb": "feFuncB", "fefuncg": "feFuncG",
	"fefuncr": "feFuncR", "fegaussianblur": "feGaussianBlur", "feimage": "feImage",
	"femerge": "feMerge", "femergenode": "feMergeNode", "femorphology": "feMorphology",
	"feoffset": "feOffset", "fepointlight": "fePointLight", "fespecularlighting": "feSpecularLighting",
	"fespotlight": "feSpotLight", "fetile": "feTile", "feturbulence": "feTurbulence",
	"foreignobject": "foreignObject", "glyphref": "glyphRef", "lineargradient": "linearGradient",
	"radialgradient": "radialGradient", "textpath": "textPath",
}

// SVGAttributeAdjustments maps lowercase SVG attribute names to camelCase.
var SVGAttributeAdjustments = map[string]string{
	"attributename": "attributeName", "attributetype": "attributeType",
	"basefrequency": "baseFrequency", "baseprofile": "baseProfile", "calcmode": "calcMode",
	"clippathunits": "clipPathUnits", "diffuseconstant": "diffuseConstant", "edgemode": "edgeMode",
	"filterunits": "filterUnits", "glyphref": "glyphRef", "gradienttransform": "gradientTransform",
	"gradientunits": "gradientUnits", "kernelmatrix": "kernelMatrix", "kernelunitlength": "kernelUnitLength",
	"keypoints": "keyPoints", "keysplines": "keySplines", "keytimes": "keyTimes",
	"lengthadjust": "lengthAdjust", "limitingconeangle": "limitingConeAngle", "markerheight": "markerHeight",
	"markerunits": "markerUnits", "markerwidth": "markerWidth", "maskcontentunits": "maskContentUnits",
	"maskunits": "maskUnits", "numoctaves": "numOctaves", "pathlength": "pathLength",
	"patterncontentunits": "patternContentUnits", "patterntransform": "patternTransform",
	"patternunits": "patternUnits", "pointsatx": "pointsAtX", "pointsaty": "pointsAtY",
	"pointsatz": "pointsAtZ", "preservealpha": "preserveAlpha", "preserveaspectratio": "preserveAspectRatio",
	"primitiveunits": "primitiveUnits", "refx": "refX", "refy": "refY", "repeatcount": "repeatCount",
	"repeatdur": "repeatDur", "requiredextensions": "requiredExtensions", "requiredfeatures": "requiredFeatures",
	"specularconstant": "specularConstant", "specularexponent": "specularExponent", "spreadmethod": "spreadMethod",
	"startoffset": "startOffset", "stddeviation": "stdDeviation", "stitchtiles": "stitchTiles",
	"surfacescale": "surfaceScale", "systemlanguage": "systemLanguage", "tablevalues": "tableValues",
	"targetx": "targetX", "targety": "targetY", "textlength": "textLength", "viewbox": "viewBox",
	"viewtarget": "viewTarget", "xchannelselector": "xChannelSelector", "ychannelselector": "yChannelSelector",
	"zoomandpan": "zoomAndPan",
}

// MathMLAttributeAdjustments maps lowercase MathML attribute names to their
// camelCase surface form.
var MathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// ForeignAttributeAdjustments maps lowercase qualified attribute names to
// their namespaced (prefix, local, URI) form.
var ForeignAttributeAdjustments = map[string]ForeignAttribute{
	"xlink:actuate": {Prefix: "xlink", LocalName: "actuate", NamespaceURL: NamespaceXLink},
	"xlink:arcrole": {Prefix: "xlink", LocalName: "arcrole", NamespaceURL: NamespaceXLink},
	"xlink:href": {Prefix: "xlink", LocalName: "href", NamespaceURL: NamespaceXLink},
	"xlink:role": {Prefix: "xlink", LocalName: "role", NamespaceURL: NamespaceXLink},
	"xlink:show": {Prefix: "xlink", LocalName: "show", NamespaceURL: NamespaceXLink},
	"xlink:title": {Prefix: "xlink", LocalName: "title", NamespaceURL: NamespaceXLink},
	"xlink:type": {Prefix: "xlink", LocalName: "type", NamespaceURL: NamespaceXLink},
	"xml:lang": {Prefix: "xml", LocalName: "lang", NamespaceURL: NamespaceXML},
	"xml:space": {Prefix: "xml", LocalName: "space", NamespaceURL: NamespaceXML},
	"xmlns": {Prefix: "", LocalName: "xmlns", NamespaceURL: NamespaceXMLNS},
	"xmlns:xlink": {Prefix: "xmlns", LocalName: "xlink", NamespaceURL: NamespaceXMLNS},
}

// IntegrationPoint names an element that switches foreign content back into
// HTML parsing rules (SVG foreignObject/desc/title, MathML annotation-xml).
type IntegrationPoint struct {
	Namespace string
	LocalName string
}

var HTMLIntegrationPoints = map[IntegrationPoint]bool{
	{Namespace: NamespaceMathML, LocalName: "annotation-xml"}: true,
	{Namespace: NamespaceSVG, LocalName: "foreignObject"}: true,
	{Namespace: NamespaceSVG, LocalName: "desc"}: true,
	{Namespace: NamespaceSVG, LocalName: "title"}: true,
}

var MathMLTextIntegrationPoints = map[IntegrationPoint]bool{
	{Namespace: NamespaceMathML, LocalName: "mi"}: true,
	{Namespace: NamespaceMathML, LocalName: "mo"}: true,
	{Namespace: NamespaceMathML, LocalName: "mn"}: true,
	{Namespace: NamespaceMathML, LocalName: "ms"}: true,
	{Namespace: NamespaceMathML, LocalName: "mtext"}: true,
}

// ForeignBreakoutElements are HTML element names that force an exit from
// foreign content back to HTML insertion rules when seen as a start tag.
var ForeignBreakoutElements = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "head": true, "hr": true, "i": true,
	"img": true, "li": true, "listing": true, "menu": true, "meta": true,
	"nobr": true, "ol": true, "p": true, "pre": true, "ruby": true, "s": true,
	"small": true, "span": true, "strong": true, "strike": true, "sub": true,
	"sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}
