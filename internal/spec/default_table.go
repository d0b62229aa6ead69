package spec

// DefaultTable returns a representative AMP HTML table: the document
// skeleton, common body markup, and a set of AMP components exercising
// every rule kind. Each call returns a fresh table.
func DefaultTable() *Table {
	t := &Table{
		GlobalAttrs: globalAttrs(),
		LayoutAttrs: layoutAttrs(),
	}
	t.Add(documentTags()...)
	t.Add(headTags()...)
	t.Add(scriptTags()...)
	t.Add(styleTags()...)
	t.Add(markupTags()...)
	t.Add(formTags()...)
	t.Add(mediaTags()...)
	t.Add(componentTags()...)
	return t
}

var (
	webProtocols  = AllowedProtocol{"http", "https"}
	httpsOnly     = AllowedProtocol{"https"}
	imageProtocol = AllowedProtocol{"data", "http", "https"}
	// a tag specific id replaces the global one and must repeat this
	reservedID    = DisallowedValueRegex(`(^|\s)(__amp_|i-amphtml-)`)
	linkProtocols = AllowedProtocol{
		"ftp", "geo", "http", "https", "mailto", "maps", "sip", "sms",
		"tel", "viber", "whatsapp", "fb-messenger", "intent", "skype",
		"snapchat", "twitter", "web+mastodon",
	}
)

func layouts(ls ...Layout) *LayoutSpec {
	return &LayoutSpec{SupportedLayouts: ls}
}

// mediaLayouts is shared by replaced elements such as images and players.
func mediaLayouts() *LayoutSpec {
	return layouts(LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutIntrinsic, LayoutNodisplay, LayoutResponsive)
}

func candidate(tag TagSpec, attrs ...AttrSpec) RuleCandidate {
	return RuleCandidate{Tag: tag, Attrs: attrs}
}

func simple(names ...string) []RuleCandidate {
	out := make([]RuleCandidate, 0, len(names))
	for _, n := range names {
		out = append(out, candidate(TagSpec{TagName: n}))
	}
	return out
}

func globalAttrs() AttrList {
	return AttrList{
		Attr("accesskey"),
		Attr("class"),
		Attr("dir", ValueRegexCasei(`ltr|rtl|auto`)),
		Attr("draggable"),
		Attr("hidden"),
		Attr("id", reservedID),
		Attr("lang"),
		Attr("slot"),
		Attr("style"),
		Attr("tabindex"),
		Attr("title"),
		Attr("translate"),
		Attr("role"),
		Attr("on"),
		Attr("itemid"),
		Attr("itemprop"),
		Attr("itemref"),
		Attr("itemscope"),
		Attr("itemtype"),
		Attr("aria-controls"),
		Attr("aria-current"),
		Attr("aria-describedby"),
		Attr("aria-disabled"),
		Attr("aria-expanded"),
		Attr("aria-haspopup"),
		Attr("aria-hidden"),
		Attr("aria-label"),
		Attr("aria-labelledby"),
		Attr("aria-live"),
		Attr("aria-pressed"),
		Attr("aria-selected"),
	}
}

func layoutAttrs() AttrList {
	return AttrList{
		Attr("layout"),
		Attr("width"),
		Attr("height"),
		Attr("heights"),
		Attr("sizes"),
		Attr("media"),
		Attr("noloading", Value("")),
		Attr("disable-inline-width", Value("")),
	}
}

func documentTags() []RuleCandidate {
	return []RuleCandidate{
		candidate(TagSpec{TagName: "html", SpecName: "html", Unique: true},
			Attr("amp", Value("")),
			Attr("⚡", Value("")),
			Attr("transformed"),
		),
		candidate(TagSpec{TagName: "head", MandatoryParent: "html", Unique: true}),
		candidate(TagSpec{TagName: "body", MandatoryParent: "html", Unique: true}),
	}
}

func headTags() []RuleCandidate {
	viewport := ValueProperties{
		{Name: "width", Mandatory: true, Value: "device-width"},
		{Name: "height"},
		{Name: "initial-scale"},
		{Name: "minimum-scale"},
		{Name: "maximum-scale"},
		{Name: "shrink-to-fit"},
		{Name: "user-scalable"},
		{Name: "viewport-fit"},
	}
	return []RuleCandidate{
		candidate(TagSpec{TagName: "title"}),
		candidate(TagSpec{TagName: "meta", SpecName: "meta charset=utf-8", MandatoryParent: "head", Unique: true},
			Attr("charset", Mandatory{}, ValueCasei("utf-8")),
		),
		candidate(TagSpec{TagName: "meta", SpecName: "meta name=viewport", MandatoryParent: "head", Unique: true},
			Attr("name", Mandatory{}, Value("viewport")),
			Attr("content", Mandatory{}, viewport),
		),
		candidate(TagSpec{TagName: "meta", SpecName: "meta name= and content="},
			Attr("name", DisallowedValueRegex(`^(viewport|amp-.*)$`)),
			Attr("content"),
			Attr("property"),
			Attr("scheme"),
		),
		candidate(TagSpec{TagName: "link", SpecName: "link rel=canonical", MandatoryParent: "head", Unique: true},
			Attr("rel", Mandatory{}, ValueCasei("canonical")),
			Attr("href", Mandatory{}, webProtocols, AllowRelative(true)),
		),
		candidate(TagSpec{TagName: "link", SpecName: "link rel=stylesheet for fonts", MandatoryParent: "head"},
			Attr("rel", Mandatory{}, ValueCasei("stylesheet")),
			Attr("href", Mandatory{}, httpsOnly, AllowRelative(false)),
			Attr("type", ValueCasei("text/css")),
			Attr("crossorigin"),
		),
		candidate(TagSpec{TagName: "link", SpecName: "link rel="},
			Attr("rel", Mandatory{}, DisallowedValueRegex(`(^|\s)(canonical|components|import|manifest|preload|serviceworker|stylesheet|subresource)(\s|$)`)),
			Attr("href", webProtocols, AllowRelative(true)),
			Attr("hreflang"),
			Attr("color"),
			Attr("crossorigin"),
			Attr("type"),
		),
	}
}

func scriptTags() []RuleCandidate {
	jsonCdata := &CdataSpec{JSON: true, MaxBytes: 100000}
	analyticsConfig := candidate(TagSpec{TagName: "script", SpecName: "amp-analytics extension .json script", MandatoryParent: "amp-analytics"},
		Attr("type", Mandatory{}, ValueCasei("application/json")),
		Attr("nonce"),
	)
	analyticsConfig.Cdata = jsonCdata
	stateJSON := candidate(TagSpec{TagName: "script", SpecName: "amp-state extension .json script", MandatoryParent: "amp-state"},
		Attr("type", Mandatory{}, ValueCasei("application/json")),
		Attr("nonce"),
	)
	stateJSON.Cdata = jsonCdata
	ldJSON := candidate(TagSpec{TagName: "script", SpecName: "script type=application/ld+json"},
		Attr("type", Mandatory{}, ValueCasei("application/ld+json")),
		Attr("nonce"),
	)
	ldJSON.Cdata = &CdataSpec{
		JSON: true,
		DisallowedRegex: []DisallowedCdata{
			{Regex: `<!--`, ErrorMessage: "html comments"},
		},
	}

	return []RuleCandidate{
		candidate(TagSpec{TagName: "script", SpecName: "amphtml engine script", MandatoryParent: "head", Unique: true},
			Attr("src", Mandatory{}, Value("https://cdn.ampproject.org/v0.js")),
			Attr("async", Mandatory{}, Value("")),
			Attr("type", ValueCasei("text/javascript")),
			Attr("crossorigin"),
			Attr("nonce"),
		),
		candidate(TagSpec{TagName: "script", SpecName: "amp extension script", MandatoryParent: "head"},
			Attr("custom-element", Mandatory{}, ValueRegex(`amp-[a-z0-9-]+`)),
			Attr("src", Mandatory{}, ValueRegex(`https://cdn\.ampproject\.org/v0/amp-[a-z0-9-]+-(latest|[0-9]+\.[0-9]+)\.js`)),
			Attr("async", Mandatory{}, Value("")),
			Attr("type", ValueCasei("text/javascript")),
			Attr("crossorigin"),
			Attr("nonce"),
		),
		candidate(TagSpec{TagName: "script", SpecName: "amp custom template script", MandatoryParent: "head"},
			Attr("custom-template", Mandatory{}, ValueRegex(`amp-[a-z0-9-]+`)),
			Attr("src", Mandatory{}, ValueRegex(`https://cdn\.ampproject\.org/v0/amp-[a-z0-9-]+-(latest|[0-9]+\.[0-9]+)\.js`)),
			Attr("async", Mandatory{}, Value("")),
			Attr("nonce"),
		),
		analyticsConfig,
		stateJSON,
		ldJSON,
		candidate(TagSpec{TagName: "script", SpecName: "amp-mustache script template", RequiresExtension: []string{"amp-mustache"}, DisallowedAncestors: []string{"template"}},
			Attr("type", Mandatory{}, Value("text/plain")),
			Attr("template", Mandatory{}, Value("amp-mustache")),
		),
	}
}

func styleTags() []RuleCandidate {
	boilerplate := &CdataSpec{CdataRegex: `\s*body\s*\{[\s\S]*`}
	headBoilerplate := candidate(TagSpec{TagName: "style", SpecName: "head > style[amp-boilerplate]", MandatoryParent: "head", Unique: true},
		Attr("amp-boilerplate", Mandatory{}, Value("")),
	)
	headBoilerplate.Cdata = boilerplate
	noscriptBoilerplate := candidate(TagSpec{TagName: "style", SpecName: "noscript > style[amp-boilerplate]", MandatoryParent: "noscript", MandatoryAncestor: "head", Unique: true},
		Attr("amp-boilerplate", Mandatory{}, Value("")),
	)
	noscriptBoilerplate.Cdata = boilerplate
	custom := candidate(TagSpec{TagName: "style", SpecName: "style amp-custom", MandatoryParent: "head", Unique: true},
		Attr("amp-custom", Mandatory{}, Value("")),
		Attr("nonce"),
	)
	custom.Cdata = &CdataSpec{
		MaxBytes: 75000,
		DisallowedRegex: []DisallowedCdata{
			{Regex: `<!--`, ErrorMessage: "html comments"},
			{Regex: `(?i)!important`, ErrorMessage: "CSS !important"},
			{Regex: `(?i)\.i-amphtml-`, ErrorMessage: "CSS i-amphtml- name prefix"},
		},
	}
	keyframes := candidate(TagSpec{TagName: "style", SpecName: "style amp-keyframes", MandatoryParent: "body", Unique: true},
		Attr("amp-keyframes", Mandatory{}, Value("")),
	)
	keyframes.Cdata = &CdataSpec{MaxBytes: 500000}
	return []RuleCandidate{headBoilerplate, noscriptBoilerplate, custom, keyframes}
}

func markupTags() []RuleCandidate {
	out := simple(
		"div", "span", "p", "b", "i", "em", "strong", "u", "s", "small", "mark",
		"sub", "sup", "abbr", "cite", "code", "kbd", "samp", "var", "pre", "br", "hr",
		"ul", "h1", "h2", "h3", "h4", "h5", "h6", "article", "aside", "header",
		"footer", "nav", "main", "figure", "figcaption", "address", "dl", "dt", "dd",
		"table", "caption", "thead", "tbody", "tfoot", "tr",
	)
	cells := []AttrSpec{
		Attr("colspan", ValueRegex(`[0-9]+`)),
		Attr("rowspan", ValueRegex(`[0-9]+`)),
		Attr("headers"),
	}
	out = append(out,
		candidate(TagSpec{TagName: "section", DisallowedAncestors: []string{"amp-accordion"}}),
		candidate(TagSpec{TagName: "ol"},
			Attr("reversed", Value("")),
			Attr("start", ValueRegex(`-?[0-9]+`)),
			Attr("type", ValueRegex(`[1aAiI]`)),
		),
		candidate(TagSpec{TagName: "li"}, Attr("value", ValueRegex(`[0-9]*`))),
		candidate(TagSpec{TagName: "td"}, cells...),
		candidate(TagSpec{TagName: "th"}, append(cells, Attr("scope"), Attr("abbr"))...),
		candidate(TagSpec{TagName: "blockquote"}, Attr("cite", webProtocols, AllowRelative(true))),
		candidate(TagSpec{TagName: "q"}, Attr("cite", webProtocols, AllowRelative(true))),
		candidate(TagSpec{TagName: "time"}, Attr("datetime")),
		candidate(TagSpec{TagName: "a"},
			Attr("href", linkProtocols, AllowRelative(true), AllowEmpty(true)),
			Attr("target", ValueRegex(`_blank|_self|_top`)),
			Attr("rel", DisallowedValueRegex(`(^|\s)(components|dns-prefetch|import|manifest|preconnect|prefetch|preload|prerender|serviceworker|stylesheet|subresource)(\s|$)`)),
			Attr("download"),
			Attr("hreflang"),
			Attr("rev"),
			Attr("type", ValueCasei("text/html")),
			Attr("name"),
			Attr("referrerpolicy"),
		),
		candidate(TagSpec{TagName: "noscript", SpecName: "noscript enclosure for boilerplate", MandatoryParent: "head", Unique: true}),
		candidate(TagSpec{TagName: "noscript", SpecName: "noscript", MandatoryAncestor: "body", DisallowedAncestors: []string{"noscript", "template"}}),
	)
	return out
}

func formTags() []RuleCandidate {
	form := []string{"amp-form"}
	return []RuleCandidate{
		candidate(TagSpec{TagName: "form", SpecName: "form [method=GET]", RequiresExtension: form, DisallowedAncestors: []string{"form", "amp-app-banner"}},
			Attr("action", Mandatory{}, httpsOnly, AllowRelative(true)),
			Attr("method", ValueCasei("get")),
			Attr("target", Mandatory{}, ValueRegexCasei(`_blank|_top`)),
			Attr("action-xhr", httpsOnly, AllowRelative(true)),
			Attr("name"),
			Attr("novalidate", Value("")),
			Attr("autocomplete"),
		),
		candidate(TagSpec{TagName: "form", SpecName: "form [method=POST]", RequiresExtension: form, DisallowedAncestors: []string{"form", "amp-app-banner"}},
			Attr("action-xhr", Mandatory{}, httpsOnly, AllowRelative(true)),
			Attr("method", Mandatory{}, ValueCasei("post")),
			Attr("target", ValueRegexCasei(`_blank|_top`)),
			Attr("name"),
			Attr("novalidate", Value("")),
			Attr("autocomplete"),
		),
		candidate(TagSpec{TagName: "input"},
			Attr("type", DisallowedValueRegex(`(?i)^(button|file|image|password)$`)),
			Attr("name"),
			Attr("value"),
			Attr("placeholder"),
			Attr("required", Value("")),
			Attr("disabled", Value("")),
			Attr("checked", Value("")),
			Attr("min"),
			Attr("max"),
			Attr("step"),
			Attr("pattern"),
			Attr("maxlength", ValueRegex(`[0-9]+`)),
			Attr("autocomplete"),
		),
		candidate(TagSpec{TagName: "label"}, Attr("for")),
		candidate(TagSpec{TagName: "textarea"}, Attr("name"), Attr("rows"), Attr("cols"), Attr("placeholder"), Attr("required", Value(""))),
		candidate(TagSpec{TagName: "button"},
			Attr("type", ValueRegexCasei(`button|submit|reset`)),
			Attr("name"),
			Attr("value"),
			Attr("disabled", Value("")),
		),
	}
}

func mediaTags() []RuleCandidate {
	ampImg := mediaLayouts()
	return []RuleCandidate{
		candidate(TagSpec{TagName: "img", MandatoryAncestor: "noscript"},
			Attr("src", Mandatory{}, imageProtocol, AllowRelative(true)).WithAlternatives("srcset"),
			Attr("srcset", imageProtocol, AllowRelative(true)),
			Attr("alt"),
			Attr("width"),
			Attr("height"),
			Attr("sizes"),
			Attr("decoding", ValueCasei("async")),
			Attr("loading", ValueRegexCasei(`lazy|eager`)),
		),
		candidate(TagSpec{TagName: "amp-img", Layout: ampImg},
			Attr("src", Mandatory{}, imageProtocol, AllowRelative(true)).WithAlternatives("srcset"),
			Attr("srcset", imageProtocol, AllowRelative(true)),
			Attr("alt"),
			Attr("attribution"),
			Attr("object-fit"),
			Attr("object-position"),
			Attr("placeholder", Value("")),
			Attr("fallback", Value("")),
			Attr("lightbox").WithExtension("amp-lightbox-gallery"),
			Attr("referrerpolicy"),
		),
		candidate(TagSpec{TagName: "amp-video", Layout: mediaLayouts(), RequiresExtension: []string{"amp-video"}},
			Attr("src", httpsOnly, AllowRelative(true)),
			Attr("poster", imageProtocol, AllowRelative(true)),
			Attr("artwork"),
			Attr("album"),
			Attr("artist"),
			Attr("autoplay", Value("")),
			Attr("controls", Value("")),
			Attr("loop", Value("")),
			Attr("muted", Value("")),
			Attr("crossorigin"),
			Attr("preload", ValueRegex(`none|metadata|auto|`)),
			Attr("dock").WithExtension("amp-video-docking"),
		),
		candidate(TagSpec{TagName: "source", MandatoryParent: "amp-video"},
			Attr("src", Mandatory{}, httpsOnly, AllowRelative(true)),
			Attr("type"),
			Attr("media"),
		),
		candidate(TagSpec{TagName: "track", MandatoryParent: "amp-video"},
			Attr("src", Mandatory{}, httpsOnly, AllowRelative(true)),
			Attr("kind", ValueRegexCasei(`subtitles|captions|descriptions|chapters|metadata`)),
			Attr("label"),
			Attr("srclang"),
			Attr("default", Value("")),
		),
		candidate(TagSpec{TagName: "amp-iframe", Layout: mediaLayouts(), RequiresExtension: []string{"amp-iframe"}, MandatoryOneOf: []string{"src", "srcdoc"}},
			Attr("src", httpsOnly, AllowRelative(false), DisallowedDomain("ampproject.org")),
			Attr("srcdoc"),
			Attr("sandbox"),
			Attr("frameborder", ValueRegex(`0|1`)),
			Attr("allowfullscreen", Value("")),
			Attr("allowpaymentrequest", Value("")),
			Attr("allowtransparency", Value("")),
			Attr("allow"),
			Attr("referrerpolicy"),
			Attr("resizable", Value("")),
			Attr("scrolling", ValueRegex(`auto|yes|no`)),
		),
		candidate(TagSpec{TagName: "amp-youtube", Layout: layouts(LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutNodisplay, LayoutResponsive), RequiresExtension: []string{"amp-youtube"}, MandatoryOneOf: []string{"data-videoid", "data-live-channelid"}},
			Attr("data-videoid", ValueRegex(`[^=/?:]+`)),
			Attr("data-live-channelid", ValueRegex(`[^=/?:]+`)),
			Attr("autoplay", Value("")),
			Attr("loop", Value("")),
			Attr("credentials", ValueRegex(`include|omit`)),
		),
		candidate(TagSpec{TagName: "amp-twitter", Layout: layouts(LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutNodisplay, LayoutResponsive), RequiresExtension: []string{"amp-twitter"}, MandatoryAnyOf: []string{"data-tweetid", "data-momentid", "data-timeline-source-type"}},
			Attr("data-tweetid"),
			Attr("data-momentid"),
			Attr("data-timeline-source-type"),
			Attr("data-cards", Value("hidden")),
			Attr("data-conversation", Value("none")),
		),
		candidate(TagSpec{TagName: "amp-pixel", Layout: &LayoutSpec{SupportedLayouts: []Layout{LayoutFixed, LayoutNodisplay}, DefinesDefaultWidth: true, DefinesDefaultHeight: true}},
			Attr("src", Mandatory{}, httpsOnly, AllowRelative(true)),
			Attr("referrerpolicy", ValueCasei("no-referrer")),
			Attr("allow-ssr-img", Value("")),
		),
	}
}

func componentTags() []RuleCandidate {
	carouselAttrs := []AttrSpec{
		Attr("type", ValueRegex(`carousel|slides`)),
		Attr("autoplay", ValueRegex(`(|[0-9]+)`)),
		Attr("delay", ValueRegex(`[0-9]+`)),
		Attr("loop", Value("")),
		Attr("controls", Value("")),
		Attr("slide", ValueRegex(`[0-9]+`)),
	}
	carouselLayouts := layouts(LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutNodisplay, LayoutResponsive)
	carouselChildren := &ChildTags{MandatoryMinNum: Count(1)}

	headings := []string{"h1", "h2", "h3", "h4", "h5", "h6", "header"}

	return []RuleCandidate{
		candidate(TagSpec{TagName: "amp-layout", Layout: layouts(LayoutContainer, LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutIntrinsic, LayoutNodisplay, LayoutResponsive)}),
		candidate(TagSpec{TagName: "amp-fit-text", Layout: layouts(LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutNodisplay, LayoutResponsive), RequiresExtension: []string{"amp-fit-text"}},
			Attr("min-font-size", ValueRegex(`[0-9]+`)),
			Attr("max-font-size", ValueRegex(`[0-9]+`)),
		),
		candidate(TagSpec{TagName: "amp-sidebar", MandatoryParent: "body", Unique: true, Layout: layouts(LayoutNodisplay), RequiresExtension: []string{"amp-sidebar"}},
			Attr("side", ValueRegex(`left|right`)),
			Attr("data-close-button-aria-label"),
		),
		candidate(TagSpec{TagName: "amp-carousel", SpecName: "amp-carousel", Layout: carouselLayouts, ChildTags: carouselChildren, RequiresExtension: []string{"amp-carousel"}},
			carouselAttrs...,
		),
		candidate(TagSpec{TagName: "amp-carousel", SpecName: "amp-carousel [lightbox]", Layout: carouselLayouts, ChildTags: carouselChildren, RequiresExtension: []string{"amp-carousel", "amp-lightbox-gallery"}},
			append(append([]AttrSpec(nil), carouselAttrs...), Attr("lightbox", Mandatory{}))...,
		),
		candidate(TagSpec{TagName: "amp-accordion", Layout: layouts(LayoutContainer, LayoutNodisplay), ChildTags: &ChildTags{ChildOneOf: []string{"section"}}, RequiresExtension: []string{"amp-accordion"}},
			Attr("animate", Value("")),
			Attr("disable-session-states", Value("")),
			Attr("expand-single-section", Value("")),
		),
		candidate(TagSpec{TagName: "section", SpecName: "amp-accordion > section", MandatoryParent: "amp-accordion", ChildTags: &ChildTags{MandatoryNum: Count(2), FirstChildOneOf: headings}},
			Attr("expanded", Value("")),
			Attr("animate", Value("")),
		),
		candidate(TagSpec{TagName: "template", SpecName: "template", RequiresExtension: []string{"amp-mustache"}, DisallowedAncestors: []string{"template"}},
			Attr("type", Mandatory{}, Value("amp-mustache")),
		),
		candidate(TagSpec{TagName: "amp-analytics", Layout: layouts(LayoutNodisplay, LayoutContainer), ChildTags: &ChildTags{ChildOneOf: []string{"script"}}, RequiresExtension: []string{"amp-analytics"}},
			Attr("type"),
			Attr("config", httpsOnly, AllowRelative(false)),
			Attr("data-credentials", ValueRegex(`include|omit`)),
			Attr("trigger", ValueCasei("immediate")),
		),
		candidate(TagSpec{TagName: "amp-state", RequiresExtension: []string{"amp-bind"}},
			Attr("id", Mandatory{}, reservedID),
			Attr("src", httpsOnly, AllowRelative(true)),
			Attr("credentials", ValueRegex(`include|omit`)),
		),
		candidate(TagSpec{TagName: "amp-list", Layout: layouts(LayoutFill, LayoutFixed, LayoutFixedHeight, LayoutFlexItem, LayoutNodisplay, LayoutResponsive, LayoutContainer), RequiresExtension: []string{"amp-list"}},
			Attr("src", Mandatory{}, httpsOnly, AllowRelative(true)),
			Attr("items"),
			Attr("max-items", ValueRegex(`[0-9]+`)),
			Attr("template"),
			Attr("credentials", ValueRegex(`include|omit`)),
		),
	}
}
