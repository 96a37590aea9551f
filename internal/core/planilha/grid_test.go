package planilha

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCarregarGradeTextoUTF8(t *testing.T) {
	data := []byte("Código;Descrição\n101;CAIXA\n")
	g := CarregarGradeTexto(data)
	if len(g) != 2 {
		t.Fatalf("linhas = %d, esperado 2", len(g))
	}
	if g[0][1] != "Descrição" {
		t.Errorf("célula = %q, esperado \"Descrição\"", g[0][1])
	}
}

func TestCarregarGradeTextoLatin1(t *testing.T) {
	// "Descrição;Valor" em ISO-8859-1
	data := []byte("Descri\xe7\xe3o;Valor\n101;1,00\n")
	g := CarregarGradeTexto(data)
	if len(g) != 2 {
		t.Fatalf("linhas = %d, esperado 2", len(g))
	}
	if g[0][0] != "Descrição" {
		t.Errorf("célula = %q, esperado \"Descrição\"", g[0][0])
	}
}

func TestInferirDelimitadorVirgula(t *testing.T) {
	g := CarregarGradeTexto([]byte("a,b,c\n1,2,3\n"))
	if len(g) != 2 || len(g[0]) != 3 {
		t.Fatalf("grade inesperada: %v", g)
	}
	if g[1][2] != "3" {
		t.Errorf("célula = %q, esperado \"3\"", g[1][2])
	}
}

func TestCarregarGradeXLSXExpandeMesclagens(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "X"); err != nil {
		t.Fatal(err)
	}
	if err := f.MergeCell("Sheet1", "A1", "C1"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "linha2"); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	g, err := CarregarGrade(buf.Bytes(), "teste.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if len(g) < 1 || len(g[0]) < 3 {
		t.Fatalf("grade inesperada: %v", g)
	}
	for c := 0; c < 3; c++ {
		if g[0][c] != "X" {
			t.Errorf("g[0][%d] = %q, esperado \"X\" (região mesclada)", c, g[0][c])
		}
	}
}

func TestCarregarGradeXLSXIlegivel(t *testing.T) {
	_, err := CarregarGrade([]byte("isto não é um workbook"), "lixo.xlsx")
	if !errors.Is(err, ErrEntradaIlegivel) {
		t.Errorf("esperado ErrEntradaIlegivel, veio %v", err)
	}
}

func TestCarregarGradeExtensaoDesconhecidaVaiParaTexto(t *testing.T) {
	g, err := CarregarGrade([]byte("a;b\n"), "relatorio.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(g) != 1 || g[0][0] != "a" {
		t.Errorf("grade inesperada: %v", g)
	}
}
