package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
	"git.home.luguber.info/inful/featuredoc/internal/workunit"
)

type countReads struct{}

type printReads struct{}

type readFilter struct{}

func walkerDoc(name string) classdoc.ClassDoc {
	return classdoc.ClassDoc{
		Name:       name,
		Package:    "walkers",
		ImportPath: "example.com/tools/walkers",
		Doc:        name + " counts the reads.\n\nIt uses *no* filters.",
		Kind:       classdoc.KindStruct,
		File:       "/src/walkers/" + name + ".go",
		Line:       12,
		Fields: []classdoc.FieldDoc{
			{Name: "Input", Type: "string", Doc: "BAM file\nto read", Tag: `arg:"input,short=I,required"`},
			{Name: "Debug", Type: "bool", Tag: `arg:"debug,hidden"`},
			{Name: "state", Type: "int"},
		},
	}
}

func TestFactory_SkipsDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f := NewFactory(config.RunContext{}, nil, logger)

	doc := walkerDoc("CountReads")
	h := f.HandlerFor(doc, feature.Descriptor{Enabled: false, GroupName: "G"})
	assert.Nil(t, h)
	assert.Contains(t, buf.String(), "Skipping disabled documentation")
	assert.Contains(t, buf.String(), "example.com/tools/walkers.CountReads")

	h = f.HandlerFor(doc, feature.Descriptor{Enabled: true, GroupName: "G"})
	require.NotNil(t, h)
	assert.IsType(t, &GenericHandler{}, h)

	hidden := doc
	hidden.Directives = map[string]string{classdoc.DirectiveHidden: ""}
	assert.False(t, h.IncludeInDocs(hidden, nil))
	shown := NewFactory(config.RunContext{ShowHidden: true}, nil, logger).
		HandlerFor(doc, feature.Descriptor{Enabled: true, GroupName: "G"})
	require.NotNil(t, shown)
	assert.True(t, shown.IncludeInDocs(hidden, nil))
}

func TestIncludeInDocs(t *testing.T) {
	h := NewGenericHandler(config.RunContext{}, nil)
	shown := NewGenericHandler(config.RunContext{ShowHidden: true}, nil)
	typ := reflect.TypeOf(countReads{})

	doc := walkerDoc("CountReads")
	assert.True(t, h.IncludeInDocs(doc, typ))
	assert.True(t, h.IncludeInDocs(doc, nil))

	iface := doc
	iface.Kind = classdoc.KindInterface
	assert.False(t, h.IncludeInDocs(iface, typ))
	assert.False(t, h.IncludeInDocs(doc, reflect.TypeOf((*feature.Documented)(nil)).Elem()))

	deprecated := doc
	deprecated.Doc = "Old walker.\n\nDeprecated: use PrintReads."
	assert.False(t, h.IncludeInDocs(deprecated, typ))
	assert.False(t, shown.IncludeInDocs(deprecated, typ))

	hidden := doc
	hidden.Directives = map[string]string{classdoc.DirectiveHidden: ""}
	assert.False(t, h.IncludeInDocs(hidden, typ))
	assert.True(t, shown.IncludeInDocs(hidden, typ))
}

func TestDestinationFilename(t *testing.T) {
	h := NewGenericHandler(config.RunContext{}, nil)
	assert.Equal(t, "example_com_tools_walkers_CountReads.html", h.DestinationFilename(walkerDoc("CountReads"), nil))
	assert.Equal(t, "main_Tool.html", h.DestinationFilename(classdoc.ClassDoc{Name: "Tool", ImportPath: "main"}, nil))
}

func TestTemplateName(t *testing.T) {
	h := NewGenericHandler(config.RunContext{}, nil)
	doc := walkerDoc("CountReads")
	assert.Equal(t, WalkerTemplate, h.TemplateName(doc, feature.Descriptor{Category: feature.CategoryWalker}))
	assert.Equal(t, AnnotationTemplate, h.TemplateName(doc, feature.Descriptor{Category: feature.CategoryAnnotation}))
	assert.Equal(t, GenericTemplate, h.TemplateName(doc, feature.Descriptor{Category: feature.CategoryCodec}))
	assert.Equal(t, GenericTemplate, h.TemplateName(doc, feature.Descriptor{}))
}

func TestProcessOne(t *testing.T) {
	h := NewGenericHandler(config.RunContext{}, nil)
	filterType := reflect.TypeOf(readFilter{})
	missingType := reflect.TypeOf(struct{ X int }{})

	count := &workunit.Unit{
		Name: "CountReads", Filename: "count.html", Group: "Reads",
		Feature: feature.Descriptor{
			Enabled: true, GroupName: "Reads", Summary: "Read tools",
			Category:  feature.CategoryWalker,
			ExtraDocs: []reflect.Type{filterType, missingType},
		},
		ClassDoc:        walkerDoc("CountReads"),
		Type:            reflect.TypeOf(countReads{}),
		BuildTimestamp:  "2026/10/18 10:00:00",
		AbsoluteVersion: "main-abc",
	}
	printUnit := &workunit.Unit{Name: "PrintReads", Filename: "print.html", Group: "Reads", ClassDoc: walkerDoc("PrintReads"), Type: reflect.TypeOf(printReads{})}
	filter := &workunit.Unit{Name: "ReadFilter", Filename: "filter.html", Group: "Filters", ClassDoc: walkerDoc("ReadFilter"), Type: filterType}
	all := []*workunit.Unit{filter, count, printUnit}

	root := classdoc.NewRoot([]classdoc.ClassDoc{walkerDoc("CountReads")}).WithOptions([][]string{{"-test"}})
	require.NoError(t, h.ProcessOne(root, count, all))

	data := count.ForTemplate
	require.NotNil(t, data)
	assert.Equal(t, "CountReads", data["name"])
	assert.Equal(t, "example.com/tools/walkers.CountReads", data["qualifiedName"])
	assert.Equal(t, "CountReads counts the reads.", data["summary"])
	assert.Contains(t, string(data["description"].(template.HTML)), "<em>no</em>")
	assert.Equal(t, "Reads", data["group"])
	assert.Equal(t, "Read tools", data["groupSummary"])
	assert.Equal(t, "walker", data["category"])
	assert.Equal(t, "CountReads.go:12", data["source"])
	assert.Equal(t, "2026/10/18 10:00:00", data["timestamp"])
	assert.Equal(t, "main-abc", data["version"])
	assert.Equal(t, [][]string{{"-test"}}, data["options"])

	args := data["arguments"].([]map[string]any)
	require.Len(t, args, 1)
	assert.Equal(t, "--input", args[0]["name"])
	assert.Equal(t, "-I", args[0]["synonyms"])
	assert.Equal(t, true, args[0]["required"])
	assert.Equal(t, "BAM file to read", args[0]["summary"])

	extras := data["extradocs"].([]map[string]string)
	require.Len(t, extras, 2)
	assert.Equal(t, map[string]string{"name": "ReadFilter", "filename": "filter.html"}, extras[0])
	assert.Equal(t, "", extras[1]["filename"])

	rel := data["related"].([]map[string]string)
	require.Len(t, rel, 1)
	assert.Equal(t, "PrintReads", rel[0]["name"])
}

func TestProcessOne_ShowHiddenArguments(t *testing.T) {
	h := NewGenericHandler(config.RunContext{ShowHidden: true}, nil)
	u := &workunit.Unit{Name: "CountReads", ClassDoc: walkerDoc("CountReads")}
	require.NoError(t, h.ProcessOne(nil, u, []*workunit.Unit{u}))

	args := u.ForTemplate["arguments"].([]map[string]any)
	require.Len(t, args, 2)
	assert.Equal(t, "--debug", args[1]["name"])
	assert.Equal(t, "NA", args[1]["synonyms"])
	assert.NotContains(t, u.ForTemplate, "options")
}
