package sqlfront

import (
	"fmt"
	"strings"

	"github.com/chotchki/elephantcore/internal/engine/objects"
)

type parser struct {
	toks []token
	pos  int
}

// Parse tokenizes and parses a single SQL statement, dispatching to
// CREATE TABLE, INSERT, or SELECT based on the leading keyword. A
// trailing semicolon is optional and discarded.
func Parse(input string) (objects.ParseTree, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, ParseError{err.Error()}
	}
	p := &parser{toks: toks}

	kw, err := p.peekKeyword()
	if err != nil {
		return nil, err
	}

	var tree objects.ParseTree
	switch kw {
	case "create":
		tree, err = p.parseCreateTable()
	case "insert":
		tree, err = p.parseInsert()
	case "select":
		tree, err = p.parseSelect()
	default:
		return nil, ParseError{fmt.Sprintf("unsupported statement starting with %q", kw)}
	}
	if err != nil {
		return nil, err
	}

	if p.cur().kind == tokSemicolon {
		p.pos++
	}
	if p.cur().kind != tokEOF {
		return nil, ParseError{fmt.Sprintf("unexpected trailing input at %q", p.cur().text)}
	}
	return tree, nil
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) peekKeyword() (string, error) {
	if p.cur().kind != tokIdent {
		return "", ParseError{"expected a leading keyword"}
	}
	return strings.ToLower(p.cur().text), nil
}

func (p *parser) expectIdent() (string, error) {
	if p.cur().kind != tokIdent {
		return "", ParseError{fmt.Sprintf("expected identifier, got %q", p.cur().text)}
	}
	t := p.cur().text
	p.pos++
	return t, nil
}

func (p *parser) expectKeyword(kw string) error {
	if p.cur().kind != tokIdent || !strings.EqualFold(p.cur().text, kw) {
		return ParseError{fmt.Sprintf("expected keyword %q, got %q", kw, p.cur().text)}
	}
	p.pos++
	return nil
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.cur().kind != kind {
		return ParseError{fmt.Sprintf("expected %s, got %q", what, p.cur().text)}
	}
	p.pos++
	return nil
}

func (p *parser) atKeyword(kw string) bool {
	return p.cur().kind == tokIdent && strings.EqualFold(p.cur().text, kw)
}

// parseCreateTable: CREATE TABLE ident ( ident type [NOT NULL|NULL] (, ...)* )
func (p *parser) parseCreateTable() (objects.ParseTree, error) {
	if err := p.expectKeyword("create"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("table"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	var cols []objects.ColumnDef
	for {
		colName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		typeName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		nullable := true
		if p.atKeyword("not") {
			p.pos++
			if err := p.expectKeyword("null"); err != nil {
				return nil, err
			}
			nullable = false
		} else if p.atKeyword("null") {
			p.pos++
			nullable = true
		}
		cols = append(cols, objects.ColumnDef{Name: colName, SQLTypeName: typeName, Nullable: nullable})

		if p.cur().kind == tokComma {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	return objects.CreateTableCommand{TableName: name, Columns: cols}, nil
}

// parseInsert: INSERT INTO ident [( ident (, ident)* )] VALUES ( literal (, literal)* )
func (p *parser) parseInsert() (objects.ParseTree, error) {
	if err := p.expectKeyword("insert"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("into"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var columns []string
	if p.cur().kind == tokLParen {
		p.pos++
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
			if p.cur().kind == tokComma {
				p.pos++
				continue
			}
			break
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("values"); err != nil {
		return nil, err
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	var values []string
	for {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.cur().kind == tokComma {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	return objects.InsertCommand{TableName: name, Columns: columns, Values: values}, nil
}

// parseSelect: SELECT (* | ident (, ident)*) FROM ident [WHERE ident = literal]
func (p *parser) parseSelect() (objects.ParseTree, error) {
	if err := p.expectKeyword("select"); err != nil {
		return nil, err
	}

	var columns []string
	if p.cur().kind == tokStar {
		p.pos++
		columns = []string{"*"}
	} else {
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
			if p.cur().kind == tokComma {
				p.pos++
				continue
			}
			break
		}
	}

	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var where *objects.WhereEquals
	if p.atKeyword("where") {
		p.pos++
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokEquals, "'='"); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		where = &objects.WhereEquals{Column: col, Value: lit}
	}

	return objects.SelectCommand{TableName: table, Columns: columns, Where: where}, nil
}

// parseLiteral accepts a quoted string, a bare number/identifier
// (covers integers, bools, the NULL keyword, and uuids that begin with
// a letter; a bare uuid that begins with a digit lexes as two tokens
// and is rejected, so it must be quoted) as a raw string the analyzer
// will later parse against the column's declared type.
func (p *parser) parseLiteral() (string, error) {
	switch p.cur().kind {
	case tokString, tokNumber, tokIdent:
		t := p.cur().text
		p.pos++
		return t, nil
	default:
		return "", ParseError{fmt.Sprintf("expected a literal, got %q", p.cur().text)}
	}
}

type ParseError struct {
	Reason string
}

func (e ParseError) Error() string { return "sql parse error: " + e.Reason }
