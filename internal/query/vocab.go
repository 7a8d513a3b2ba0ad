package query

import (
	"fmt"
	"slices"
	"strings"
)

// Facet identifies one of the fixed filter categories the search API
// understands. Attributes of the same facet are ORed together; facets are
// ANDed against each other.
type Facet int

// Facets in the order their groups appear in a compiled query.
const (
	FacetProjectType Facet = iota
	FacetLoader
	FacetPlatform
	FacetVersion
	FacetTag
	facetCount
)

// PageSize is the fixed number of hits requested per results page.
const PageSize = 20

// Loaders is every loader name accepted as a filter attribute and as a
// loader word in quick-download requests. The API files loaders under
// categories. "vanilla" covers shaders that need no loader at all.
var Loaders = []string{
	"bukkit", "bungeecord", "canvas", "fabric", "folia", "forge", "iris",
	"liteloader", "modloader", "neoforge", "optifine", "paper", "purpur",
	"quilt", "rift", "spigot", "sponge", "vanilla", "velocity", "waterfall",
}

// SortRules are the accepted values of a "/rule" sorting directive.
var SortRules = []string{"relevance", "downloads", "follows", "newest", "updated"}

// projectTypes maps project type attribute names, including their short
// aliases, to the type name the API expects.
var projectTypes = map[string]string{
	"mod":          "mod",
	"resourcepack": "resourcepack",
	"rp":           "resourcepack",
	"datapack":     "datapack",
	"dp":           "datapack",
	"modpack":      "modpack",
	"mp":           "modpack",
	"plugin":       "plugin",
	"shader":       "shader",
}

// attributes maps exact filter tokens, sign included, to the clause sent to
// the search API. Project type and loader entries are generated from their
// name tables; platform entries are spelled out because their positive and
// negative clauses are not mirror images (supporting a side and requiring
// it are different API fields).
var attributes = buildAttributes()

func buildAttributes() map[string]string {
	a := map[string]string{
		"+server":          "client_side!=required",
		"-server":          "client_side:required",
		"+serverside":      "client_side!=required",
		"-serverside":      "client_side:required",
		"+client":          "server_side!=required",
		"-client":          "server_side:required",
		"+clientside":      "server_side!=required",
		"-clientside":      "server_side:required",
		"+serversupported": "server_side!=unsupported",
		"-serversupported": "server_side:unsupported",
		"+clientsupported": "client_side!=unsupported",
		"-clientsupported": "client_side:unsupported",
	}
	for name, kind := range projectTypes {
		a["+"+name] = "project_type:" + kind
		a["-"+name] = "project_type!=" + kind
	}
	for _, loader := range Loaders {
		a["+"+loader] = "categories:" + loader
		a["-"+loader] = "categories!=" + loader
	}
	return a
}

// parametrics are the filters that carry a free-form argument after a
// two-character prefix. The argument is substituted into the clause format.
// Game versions cannot be excluded, so there is no "-v".
var parametrics = []struct {
	prefix string
	format string
}{
	{"+v", "versions:%s"},
	{"+t", "categories:%s"},
	{"-t", "categories!=%s"},
}

// facetMembers lists, per facet, the attribute names without their sign.
// Parametric filters register only their type character.
var facetMembers = [facetCount][]string{
	FacetProjectType: {"mod", "resourcepack", "rp", "datapack", "dp", "modpack", "mp", "plugin", "shader"},
	FacetLoader:      Loaders,
	FacetPlatform:    {"server", "client", "serverside", "clientside", "serversupported", "clientsupported"},
	FacetVersion:     {"v"},
	FacetTag:         {"t"},
}

// resolveFilter turns one filter word into its API clause. Exact attributes
// win over parametric prefixes, so "+velocity" stays a loader even though it
// starts with "+v".
func resolveFilter(word string) (string, error) {
	if clause, ok := attributes[word]; ok {
		return clause, nil
	}
	for _, p := range parametrics {
		if strings.HasPrefix(word, p.prefix) && len(word) > len(p.prefix) {
			return fmt.Sprintf(p.format, word[len(p.prefix):]), nil
		}
	}
	return "", &ParseError{Msg: fmt.Sprintf("invalid search filter %q", word)}
}

// facetOf resolves the facet a filter word belongs to. The word without its
// sign is matched against each facet's member list, exact name first, then
// its first character for the parametric filters. A miss means the
// vocabulary tables disagree with each other.
func facetOf(word string) (Facet, error) {
	name := word[1:]
	for f := FacetProjectType; f < facetCount; f++ {
		if slices.Contains(facetMembers[f], name) {
			return f, nil
		}
		if name != "" && slices.Contains(facetMembers[f], name[:1]) {
			return f, nil
		}
	}
	return 0, &InternalError{Msg: fmt.Sprintf("filter %q resolves to no facet", word)}
}

// ParseQuickRequest reports whether input names a release directly: every
// word is either a loader name or a version marker ("v" followed by the
// wanted game version), with at most one of each and at least one word in
// total. Loader names are checked first, so "vanilla" and "velocity" stay
// loaders. Bare numbers never match, which keeps them available as list
// indexes.
func ParseQuickRequest(input string) (gameVersion, loader string, ok bool) {
	words := strings.Fields(input)
	if len(words) == 0 {
		return "", "", false
	}
	for _, w := range words {
		switch {
		case slices.Contains(Loaders, w):
			if loader != "" {
				return "", "", false
			}
			loader = w
		case len(w) > 1 && strings.HasPrefix(w, "v"):
			if gameVersion != "" {
				return "", "", false
			}
			gameVersion = w[1:]
		default:
			return "", "", false
		}
	}
	return gameVersion, loader, true
}
