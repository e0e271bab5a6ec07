package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/application"
	"folio/internal/domain"
)

const legacyDataJS = `// header comment
const portfolioData = {
  personal: {
    name: 'Ada',
    github: "ada", // trailing comment
  },
  /* old flat list */
  projects: [
    {
      id: "web-portfolio",
      title: "Site",
      category: ["web", "frontend"],
      techStack: ["HTML5",],
      links: { github: "https://github.com/ada/site", demo: null },
    },
    { id: "app", title: "App", category: ["mobile"], links: {} },
  ],
  timeline: [
    { date: "2020", title: 'First', category: "project", projectId: "app", icon: ICON },
  ],
};
`

func TestParse_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "   ", "Please paste your data.js content first"},
		{"missing timeline", `{"personal": {"name": "x"}}`, "Invalid data structure - missing required fields"},
		{"missing personal", `{timeline: []}`, "Invalid data structure - missing required fields"},
		{"null personal", `{"personal": null, "timeline": []}`, "Invalid data structure - missing required fields"},
		{"garbage", `const portfolioData = alert(1);`, "Unable to parse data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var pErr *application.ParseError
			require.True(t, errors.As(err, &pErr), "expected ParseError, got %v", err)
			assert.Equal(t, tt.msg, pErr.Message)
		})
	}
}

func TestParse_StrictJSON(t *testing.T) {
	p, err := Parse(`{
		"personal": {"name": "Ada", "siteUrl": "https://ada.dev"},
		"projectCategories": {
			"web": {"title": "Web", "projects": [
				{"id": "site", "title": "Site", "links": [{"type": "github", "url": "https://g"}],
				 "sections": [
					{"type": "heading", "level": 3, "value": "Intro"},
					{"type": "list", "items": ["a", "b", "c"], "nestedItems": [{"text": "a", "level": 0}, {"text": "b", "level": 1}, {"text": "c", "level": 0}]}
				 ]}
			]},
			"mobile": {"title": "Mobile", "projects": []}
		},
		"timeline": [],
		"categories": {"work": {"label": "Work", "color": "#123456"}}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "https://ada.dev", p.Personal.SiteURL)
	require.Len(t, p.Categories, 2)
	assert.Equal(t, "web", p.Categories[0].Key)
	assert.Equal(t, "mobile", p.Categories[1].Key)

	proj := p.Categories[0].Projects[0]
	assert.Equal(t, domain.LinkGitHub, proj.Links[0].Type)
	require.Len(t, proj.Sections, 2)
	assert.Equal(t, domain.Heading{Level: 3, Text: "Intro"}, proj.Sections[0].Block)
	assert.NotEmpty(t, proj.Sections[0].ID)
	assert.Equal(t, 1, proj.Sections[1].Order)
	assert.Equal(t, []domain.ListItem{{Text: "a"}, {Text: "b", Level: 1}, {Text: "c"}}, proj.Sections[1].Block.(domain.List).Items)

	assert.Equal(t, []domain.CategoryTag{{Key: "work", Label: "Work", Color: "#123456"}}, p.Tags)
}

func TestParse_TolerantLegacyFile(t *testing.T) {
	input := strings.Replace(legacyDataJS, "ICON", `"💻"`, 1)
	p, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.Personal.Name)
	assert.Equal(t, "ada", p.Personal.GitHub)

	require.Len(t, p.Categories, 2)
	assert.Equal(t, "web", p.Categories[0].Key)
	assert.Equal(t, "Web", p.Categories[0].Title)
	assert.Equal(t, "Mobile", p.Categories[1].Title)

	site := p.Categories[0].Projects[0]
	assert.Equal(t, []string{"HTML5"}, site.TechStack)
	assert.Equal(t, []domain.Link{{Type: domain.LinkGitHub, URL: "https://github.com/ada/site"}}, site.Links)

	require.Len(t, p.Timeline, 1)
	assert.Equal(t, "💻", p.Timeline[0].Icon)
	assert.Equal(t, domain.DefaultTags(), p.Tags, "missing categories keep the default tags")
}

func TestParse_RejectsExpressions(t *testing.T) {
	_, err := Parse(strings.Replace(legacyDataJS, "ICON", `iconFor("app")`, 1))
	var pErr *application.ParseError
	require.True(t, errors.As(err, &pErr))
	assert.Contains(t, pErr.Error(), "unexpected identifier")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare keys", `{a: 1, b_2: true}`, `{"a":1,"b_2":true}`},
		{"single quotes", `{'a': 'it\'s'}`, `{"a":"it's"}`},
		{"trailing commas", `{a: [1, 2,], }`, `{"a":[1,2]}`},
		{"comments", "{ // c\n a: /* x */ null }", `{"a":null}`},
		{"undefined", `{a: undefined}`, `{"a":null}`},
		{"numbers", `{a: .5, b: +1, c: 0x1F, d: -2e3}`, `{"a":0.5,"b":1,"c":31,"d":-2e3}`},
		{"backtick", "{a: `two\nlines`}", `{"a":"two\nlines"}`},
		{"stops at semicolon", `{a: 1}; function f() {}`, `{"a":1}`},
		{"quotes escaped", `{a: 'say "hi"'}`, `{"a":"say \"hi\""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalize([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	for _, input := range []string{
		`{a: 1`,
		`{a 1}`,
		`{a: 'open}`,
		"{a: `${x}`}",
		`{a: b}`,
		`{a: 1} extra`,
		`[1 2]`,
	} {
		t.Run(input, func(t *testing.T) {
			_, err := normalize([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDataJS_RoundTrip(t *testing.T) {
	sample := domain.SamplePortfolio()

	out, err := EncodeDataJS(sample)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.Contains(text, "const portfolioData = {\n  \"personal\": {"))
	assert.Contains(t, text, "function getProjectLink(projectId)")
	assert.Contains(t, text, "url: `project.html?id=${projectId}`")
	assert.Less(t, strings.Index(text, `"projectCategories"`), strings.Index(text, `"timeline"`))
	assert.Less(t, strings.Index(text, `"timeline"`), strings.Index(text, `"categories"`))

	back, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, sample, back)
}

func TestEncodeJSON_RoundTripKeepsSectionIDs(t *testing.T) {
	sample := domain.SamplePortfolio()

	out, err := New(FormatJSON).Encode(sample)
	require.NoError(t, err)
	back, err := New(FormatJSON).Decode(out)
	require.NoError(t, err)

	assert.Equal(t, sample.Categories[0].Projects[0].Sections, back.Categories[0].Projects[0].Sections)
	assert.Equal(t, sample, back)
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	sample := domain.SamplePortfolio()

	out, err := New(FormatYAML).Encode(sample)
	require.NoError(t, err)
	assert.Contains(t, string(out), "projectCategories:")

	back, err := New(FormatYAML).Decode(out)
	require.NoError(t, err)
	assert.Equal(t, sample, back)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"js": FormatDataJS, ".json": FormatJSON, "YML": FormatYAML, "": FormatDataJS} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDecodeBlock(t *testing.T) {
	b, err := DecodeBlock([]byte(`{"type":"list","ordered":true,"nestedItems":[{"text":"a","level":0},{"text":"b","level":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.List{Ordered: true, Items: []domain.ListItem{{Text: "a"}, {Text: "b", Level: 1}}}, b)

	out, err := EncodeBlock(domain.Heading{Level: 2, Text: "Overview"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"heading","level":2,"value":"Overview"}`, string(out))

	_, err = DecodeBlock([]byte(`{"type":"table"}`))
	var pErr *application.ParseError
	assert.ErrorAs(t, err, &pErr)
}
