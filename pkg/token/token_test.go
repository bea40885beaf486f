package token

import "testing"

func TestCategories(t *testing.T) {
	tests := []struct {
		kind Kind
		want Category
	}{
		{IntegerLiteral, LiteralCategory},
		{StringLiteral, LiteralCategory},
		{UserDefinedLiteral, LiteralCategory},
		{Class, KeywordCategory},
		{True, KeywordCategory | LiteralCategory},
		{Semicolon, PunctuatorCategory},
		{LeftPar, PunctuatorCategory},
		{Plus, OperatorCategory},
		{LeftAngle, OperatorCategory | PunctuatorCategory},
		{Identifier, IdentifierCategory},
	}
	for _, tt := range tests {
		if got := tt.kind.Categories(); got != tt.want {
			t.Errorf("kind %d: categories %b, want %b", tt.kind, got, tt.want)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	if LookupIdent("class") != Class {
		t.Error("class should be a keyword")
	}
	if LookupIdent("myVar") != Identifier {
		t.Error("myVar should be an identifier")
	}
	if LookupIdent("Class") != Identifier {
		t.Error("keywords are case sensitive")
	}
}

func TestLocate(t *testing.T) {
	source := "ab\ncd\nef"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
	}
	for _, tt := range tests {
		pos := Locate(source, tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}

func TestLocateCountsRunes(t *testing.T) {
	pos := Locate("αβx", len("αβ"))
	if pos.Column != 3 {
		t.Errorf("column %d, want 3", pos.Column)
	}
}

func TestTokenEnd(t *testing.T) {
	tok := Token{Kind: Identifier, Text: "abc", Offset: 5}
	if tok.End() != 8 {
		t.Errorf("End() = %d", tok.End())
	}
}
