package config

import "strings"

// optionSpec describes one site option. Required options have no default and
// abort the run when unset.
type optionSpec struct {
	Key      string
	Default  string
	Required bool
}

const defaultSubsectionSymbol = "<div class='folder'><svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 512 512'>" +
	"<path d='M448 96h-172.1L226.7 50.75C214.7 38.74 198.5 32 181.5 32H64C28.65 32 0 60.66 0 96v320c0 35.34 28.65 64 64 64h384" +
	"c35.35 0 64-28.66 64-64V160C512 124.7 483.3 96 448 96zM64 80h117.5c4.273 0 8.293 1.664 11.31 4.688L256 144h192c8.822 0 16 7.176 16 16v32" +
	"h-416V96C48 87.18 55.18 80 64 80zM448 432H64c-8.822 0-16-7.176-16-16V240h416V416C464 424.8 456.8 432 448 432z' /></svg></div>"

const defaultGraphOptions = `{
    nodes: {
        shape: "box",
        color: { background: "rgba(19, 26, 26, 0.3)", border: "#40a088" },
        font: { face: "Berkeley Mono, monospace", color: "#ffffff", strokeWidth: 0 },
        scaling: { label: { enabled: true } },
        shapeProperties: { borderRadius: 2 }
    },
    edges: {
        color: { color: "#7a8a94", highlight: "#40a088" },
        width: 1.5,
        smooth: { type: "continuous" },
        hoverWidth: 3
    },
    interaction: { hover: true },
    height: "100%",
    width: "100%",
    physics: { solver: "repulsion" }
}`

// Option keys read by the converter itself. The remaining keys only feed
// placeholder substitution in static files.
const (
	OptSiteURL          = "SITE_URL"
	OptSiteTitle        = "SITE_TITLE"
	OptSiteTitleTab     = "SITE_TITLE_TAB"
	OptRepoURL          = "REPO_URL"
	OptLandingPage      = "LANDING_PAGE"
	OptSortBy           = "SORT_BY"
	OptSlugify          = "SLUGIFY"
	OptSlugifyLowercase = "SLUGIFY_LOWERCASE"
	OptSubsectionSymbol = "SUBSECTION_SYMBOL"
	OptLocalGraph       = "LOCAL_GRAPH"
	OptGraphLinkReplace = "GRAPH_LINK_REPLACE"
	OptSidebarCollapsed = "SIDEBAR_COLLAPSED"
	OptRootSectionName  = "ROOT_SECTION_NAME"
	OptGitDates         = "GIT_DATES"
	OptSkipCodeLinks    = "SKIP_CODE_LINKS"
	OptGraphDB          = "GRAPH_DB"
)

var optionTable = []optionSpec{
	{Key: OptSiteURL, Required: true},
	{Key: OptSiteTitle, Default: "Someone's Second Brain"},
	{Key: "TIMEZONE", Default: "Asia/Hong_Kong"},
	{Key: OptRepoURL, Required: true},
	{Key: OptLandingPage, Required: true},
	{Key: "LANDING_TITLE", Default: "Welcome to my notes"},
	{Key: OptSiteTitleTab, Default: ""},
	{Key: "LANDING_DESCRIPTION", Default: "I have nothing but intelligence."},
	{Key: "LANDING_BUTTON", Default: "Click to steal some"},
	{Key: OptSortBy, Default: "title"},
	{Key: OptSlugify, Default: "y"},
	{Key: OptSlugifyLowercase, Default: ""},
	{Key: "HOME_GRAPH", Default: "y"},
	{Key: "PAGE_GRAPH", Default: "y"},
	{Key: OptSubsectionSymbol, Default: defaultSubsectionSymbol},
	{Key: OptLocalGraph, Default: ""},
	{Key: OptGraphLinkReplace, Default: ""},
	{Key: "STRICT_LINE_BREAKS", Default: ""},
	{Key: OptSidebarCollapsed, Default: ""},
	{Key: OptRootSectionName, Default: "main"},
	{Key: "GRAPH_OPTIONS", Default: defaultGraphOptions},
	{Key: OptGitDates, Default: ""},
	{Key: OptSkipCodeLinks, Default: ""},
	{Key: OptGraphDB, Default: ""},
}

// Options holds the resolved string value of every known option.
type Options map[string]string

// Get returns the option value, or "" when unset.
func (o Options) Get(key string) string { return o[key] }

// IsTrue reports whether the option holds a truthy value (true, 1, yes, y, on).
func (o Options) IsTrue(key string) bool {
	switch strings.ToLower(strings.TrimSpace(o[key])) {
	case "true", "1", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// Keys returns option keys in declaration order.
func Keys() []string {
	keys := make([]string, 0, len(optionTable))
	for _, spec := range optionTable {
		keys = append(keys, spec.Key)
	}
	return keys
}

func defaultOptions() Options {
	opts := make(Options, len(optionTable))
	for _, spec := range optionTable {
		if !spec.Required {
			opts[spec.Key] = spec.Default
		}
	}
	return opts
}
