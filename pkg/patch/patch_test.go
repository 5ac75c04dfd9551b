package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batches = NewTable("produccion_huevos", "id_produccion",
	Column{Name: "id_galpon"},
	Column{Name: "cantidad"},
	Column{Name: "fecha"},
	Column{Name: "id_tipo_huevo"},
)

var users = NewTable("usuarios", "id_usuario",
	Column{Name: "nombre"},
	Column{Name: "telefono", Nullable: true},
)

func TestAssignmentsEmptyIsNoOp(t *testing.T) {
	values, err := batches.Assignments(Fields{})
	assert.ErrorIs(t, err, ErrNoFields)
	assert.Nil(t, values)

	values, err = batches.Assignments(nil)
	assert.ErrorIs(t, err, ErrNoFields)
	assert.Nil(t, values)
}

func TestAssignmentsKeepsSuppliedValues(t *testing.T) {
	values, err := batches.Assignments(Fields{"cantidad": 0, "id_galpon": uint(3)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"cantidad": 0, "id_galpon": uint(3)}, values)

	hostile := "x'; DROP TABLE usuarios; --"
	values, err = users.Assignments(Fields{"nombre": hostile})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nombre": hostile}, values)
}

func TestAssignmentsRejectsUnknownField(t *testing.T) {
	cases := []Fields{
		{"id_produccion": 3},
		{"cantidad": 1, "nombre_galpon": "A"},
		{"cantidad = 0; --": 1},
	}
	for _, f := range cases {
		values, err := batches.Assignments(f)
		assert.ErrorIs(t, err, ErrUnknownField)
		assert.Nil(t, values)
	}
}

func TestAssignmentsRejectsUntypedRawValue(t *testing.T) {
	f, err := FromJSON([]byte(`{"cantidad": 5}`))
	require.NoError(t, err)

	_, err = batches.Assignments(f)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestAssignmentsNullHandling(t *testing.T) {
	values, err := users.Assignments(Fields{"telefono": nil})
	require.NoError(t, err)
	v, ok := values["telefono"]
	assert.True(t, ok)
	assert.Nil(t, v)

	_, err = users.Assignments(Fields{"nombre": nil})
	assert.ErrorIs(t, err, ErrNullNotAllowed)
}

func TestFromJSONAndSet(t *testing.T) {
	f, err := FromJSON([]byte(`{"nombre": "Ana", "telefono": null, "extra": true}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"extra", "nombre", "telefono"}, f.Keys())

	nombre := "Ana"
	var telefono *string
	var documento *string
	Set(f, "nombre", &nombre)
	Set(f, "telefono", telefono)
	Set(f, "documento", documento)

	assert.Equal(t, "Ana", f["nombre"])
	assert.Nil(t, f["telefono"])
	assert.True(t, f.Has("telefono"))
	assert.False(t, f.Has("documento"))

	_, err = users.Assignments(f)
	assert.ErrorIs(t, err, ErrUnknownField)

	delete(f, "extra")
	values, err := users.Assignments(f)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nombre": "Ana", "telefono": nil}, values)
}

func TestFromJSONBodies(t *testing.T) {
	f, err := FromJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, f)

	f, err = FromJSON([]byte(" {} "))
	require.NoError(t, err)
	assert.Empty(t, f)

	_, err = FromJSON([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = FromJSON([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestNewTableRejectsKeyColumn(t *testing.T) {
	assert.Panics(t, func() {
		NewTable("fincas", "id_finca", Column{Name: "id_finca"})
	})
	assert.Panics(t, func() {
		NewTable("fincas", "id_finca", Column{Name: "nombre"}, Column{Name: "nombre"})
	})
}

func TestTableAccessors(t *testing.T) {
	assert.Equal(t, "produccion_huevos", batches.Name())
	assert.Equal(t, "id_produccion", batches.Key())
	assert.True(t, batches.Allows("fecha"))
	assert.False(t, batches.Allows("id_produccion"))
	assert.Equal(t, []string{"cantidad", "fecha", "id_galpon", "id_tipo_huevo"}, batches.Columns())
}
