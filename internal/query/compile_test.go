package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_FreeTextKeepsWordOrder(t *testing.T) {
	q, err := Compile("shader +fabric pack of doom", 0)
	require.NoError(t, err)

	assert.Equal(t, "shader pack of doom", q.Term)
	assert.Equal(t, [][]string{{"categories:fabric"}}, q.Facets)
	assert.Empty(t, q.Sort)
}

func TestCompile_FacetGrouping(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected [][]string
	}{
		{
			name:     "same category merges into one OR group",
			raw:      "+fabric +quilt",
			expected: [][]string{{"categories:fabric", "categories:quilt"}},
		},
		{
			name: "distinct categories stay separate groups in fixed order",
			raw:  "+fabric +mod",
			expected: [][]string{
				{"project_type:mod"},
				{"categories:fabric"},
			},
		},
		{
			name: "all five categories in canonical order",
			raw:  "+tutility +v1.20.1 +client +forge +mod",
			expected: [][]string{
				{"project_type:mod"},
				{"categories:forge"},
				{"server_side!=required"},
				{"versions:1.20.1"},
				{"categories:utility"},
			},
		},
		{
			name: "exclusions become standalone groups after the facet groups",
			raw:  "+mod +rp -dp -tcursed",
			expected: [][]string{
				{"project_type:mod", "project_type:resourcepack"},
				{"project_type!=datapack"},
				{"categories!=cursed"},
			},
		},
		{
			name:     "no filters yields no facets",
			raw:      "just some text",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compile(tt.raw, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q.Facets)
		})
	}
}

func TestCompile_SortingRules(t *testing.T) {
	q, err := Compile("foo /downloads", 0)
	require.NoError(t, err)
	assert.Equal(t, "downloads", q.Sort)
	assert.Equal(t, "foo", q.Term)

	q, err = Compile("foo", 0)
	require.NoError(t, err)
	assert.Empty(t, q.Sort)
}

func TestCompile_Paging(t *testing.T) {
	tests := []struct {
		name   string
		page   int
		offset int
	}{
		{"first page", 0, 0},
		{"second page", 1, 20},
		{"third page", 2, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compile("foo", tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.offset, q.Offset)
			assert.Equal(t, PageSize, q.Limit)
		})
	}
}

func TestCompile_MixedQuery(t *testing.T) {
	q, err := Compile("foo +mod +rp -dp /downloads", 0)
	require.NoError(t, err)

	assert.Equal(t, "foo", q.Term)
	assert.Equal(t, "downloads", q.Sort)
	assert.Equal(t, [][]string{
		{"project_type:mod", "project_type:resourcepack"},
		{"project_type!=datapack"},
	}, q.Facets)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"unknown filter", "foo +nosuchfilter", "+nosuchfilter"},
		{"bare plus", "+", `"+"`},
		{"bare minus", "-", `"-"`},
		{"unknown sorting rule", "foo /alphabetical", "alphabetical"},
		{"sorting rule is case sensitive", "foo /Downloads", "Downloads"},
		{"more than one sorting rule", "foo /downloads /newest", "/downloads /newest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.raw, 0)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Msg, tt.want)
		})
	}
}

func TestCompile_ParametricFilters(t *testing.T) {
	q, err := Compile("+v1.20.1 +tdecoration", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"versions:1.20.1"},
		{"categories:decoration"},
	}, q.Facets)
}

func TestCompile_LoaderWinsOverVersionPrefix(t *testing.T) {
	q, err := Compile("+velocity +vanilla", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"categories:velocity", "categories:vanilla"}}, q.Facets)
}
