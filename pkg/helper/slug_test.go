package helper

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		label    string
		expected string
	}{
		{"Situação do Pedido", "situacao_do_pedido"},
		{"  Água É boa  ", "agua_e_boa"},
		{"CPF/CNPJ", "cpf_cnpj"},
		{"Nome Completo", "nome_completo"},
		{"123 Abc", "123_abc"},
		{"éàü", "eau"},
		{"nome---completo", "nome_completo"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Normalize(tc.label), "label %q", tc.label)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, label := range []string{"Situação do Pedido", "Data de Nascimento", "cpf_cnpj"} {
		once := Normalize(label)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "nome_completo", FieldName("Nome Completo", 1))
	assert.Equal(t, "field_3", FieldName("", 3))
	assert.Equal(t, "field_1", FieldName("$$$", 1))
}

func TestModuleSlug(t *testing.T) {
	slug := ModuleSlug("Cadastro de Fornecedores")
	assert.Regexp(t, regexp.MustCompile(`^cadastro-de-fornecedores-[1-9]\d{3}$`), slug)

	empty := ModuleSlug("!!!")
	assert.Regexp(t, regexp.MustCompile(`^modulo-[1-9]\d{3}$`), empty)
}
