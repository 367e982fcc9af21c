package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
)

type sample struct{}

type other int

const pkg = "git.home.luguber.info/inful/featuredoc/internal/registry"

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, pkg+".sample", QualifiedName(reflect.TypeFor[sample]()))
	assert.Equal(t, pkg+".sample", QualifiedName(reflect.TypeFor[*sample]()))
	assert.Equal(t, "int", QualifiedName(reflect.TypeFor[int]()))
	assert.Empty(t, QualifiedName(reflect.TypeFor[struct{}]()))
	assert.Empty(t, QualifiedName(nil))
}

func TestRegisterAndResolve(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(reflect.TypeFor[sample](), reflect.TypeFor[*other]()))
	require.ErrorIs(t, r.Register(reflect.TypeFor[[]int]()), ErrUnnamedType)
	require.ErrorIs(t, r.Register(reflect.TypeFor[struct{}]()), ErrUnnamedType)

	assert.Equal(t, []string{pkg + ".other", pkg + ".sample"}, r.Names())

	typ, err := r.Resolve(classdoc.ClassDoc{Name: "sample", ImportPath: pkg})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[sample](), typ)

	typ, err = r.ResolveName(pkg + ".other")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[other](), typ)
}

func TestResolveFailuresAreUniform(t *testing.T) {
	r := New()
	r.RegisterLoader("ext.Missing", func() (reflect.Type, error) {
		return nil, errors.New("native library not linked")
	})
	r.RegisterLoader("ext.Broken", func() (reflect.Type, error) {
		panic("bad definition")
	})
	r.RegisterLoader("ext.Nil", func() (reflect.Type, error) { return nil, nil })
	r.RegisterLoader("ext.Lazy", func() (reflect.Type, error) { return reflect.TypeFor[sample](), nil })

	for _, name := range []string{"ext.Unknown", "ext.Missing", "ext.Broken", "ext.Nil"} {
		t.Run(name, func(t *testing.T) {
			typ, err := r.ResolveName(name)
			assert.Nil(t, typ)
			assert.ErrorIs(t, err, ErrTypeNotFound)
		})
	}

	typ, err := r.ResolveName("ext.Lazy")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[sample](), typ)
	assert.Equal(t, []string{"ext.Broken", "ext.Lazy", "ext.Missing", "ext.Nil"}, r.Names())
}
