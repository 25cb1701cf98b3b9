package jsx

// attributeNames maps HTML attribute names to their component-syntax spelling.
// Anything not listed (data-*, aria-*, custom directives) passes through.
var attributeNames = map[string]string{
	"class":             "className",
	"for":               "htmlFor",
	"accept-charset":    "acceptCharset",
	"accesskey":         "accessKey",
	"allowfullscreen":   "allowFullScreen",
	"autocomplete":      "autoComplete",
	"autofocus":         "autoFocus",
	"autoplay":          "autoPlay",
	"cellpadding":       "cellPadding",
	"cellspacing":       "cellSpacing",
	"charset":           "charSet",
	"colspan":           "colSpan",
	"contenteditable":   "contentEditable",
	"crossorigin":       "crossOrigin",
	"datetime":          "dateTime",
	"enctype":           "encType",
	"formaction":        "formAction",
	"frameborder":       "frameBorder",
	"hreflang":          "hrefLang",
	"http-equiv":        "httpEquiv",
	"inputmode":         "inputMode",
	"marginheight":      "marginHeight",
	"marginwidth":       "marginWidth",
	"maxlength":         "maxLength",
	"minlength":         "minLength",
	"novalidate":        "noValidate",
	"readonly":          "readOnly",
	"referrerpolicy":    "referrerPolicy",
	"rowspan":           "rowSpan",
	"spellcheck":        "spellCheck",
	"srcdoc":            "srcDoc",
	"srclang":           "srcLang",
	"srcset":            "srcSet",
	"tabindex":          "tabIndex",
	"usemap":            "useMap",
	"xlink:href":        "xlinkHref",
	"xml:lang":          "xmlLang",
	"xml:space":         "xmlSpace",
	"xmlns:xlink":       "xmlnsXlink",
	"stroke-width":      "strokeWidth",
	"stroke-linecap":    "strokeLinecap",
	"stroke-linejoin":   "strokeLinejoin",
	"stroke-dasharray":  "strokeDasharray",
	"stroke-miterlimit": "strokeMiterlimit",
	"fill-rule":         "fillRule",
	"clip-rule":         "clipRule",
	"clip-path":         "clipPath",
	"stop-color":        "stopColor",
	"font-family":       "fontFamily",
	"font-size":         "fontSize",
	"text-anchor":       "textAnchor",
}

// standardBooleanAttrs lists HTML boolean attributes; an empty value means true.
var standardBooleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}
