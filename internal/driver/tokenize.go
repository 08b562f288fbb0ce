package driver

import (
	"errors"
	"fmt"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/lexer"
	"esparse/internal/parser"
	"esparse/internal/source"
	"esparse/internal/token"
)

type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Comments []*ast.Comment
	// Err is the lexical error that stopped tokenization, also present in Bag.
	Err *diag.Error
	Bag *diag.Bag
}

// Tokenize reads path and lexes it to the end without a parser. Tokens read
// before a lexical error are kept.
func Tokenize(path string, opts lexer.Options, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(fs, fs.Get(fileID), opts, maxDiagnostics)
}

// TokenizeSource lexes content that does not come from disk.
func TokenizeSource(name string, content []byte, opts lexer.Options, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeFile(fs, fs.Get(fileID), opts, maxDiagnostics)
}

func tokenizeFile(fs *source.FileSet, file *source.File, opts lexer.Options, maxDiagnostics int) (*TokenizeResult, error) {
	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(maxDiagnostics),
	}
	tokens, comments, err := lexer.Tokenize(string(file.Content), opts)
	res.Tokens, res.Comments = tokens, comments
	if err != nil {
		var de *diag.Error
		if !errors.As(err, &de) {
			return nil, err
		}
		res.Err = de
		res.Bag.Add(de.Diagnostic(file))
	}
	return res, nil
}

// LexerOptions derives the lexer settings of a standalone tokenize run from
// the parse options, for a file named path.
func LexerOptions(opts Options, path string) lexer.Options {
	st := SourceTypeFor(path, orScript(opts.Parser.SourceType))
	return lexer.Options{
		HTMLComments: opts.Parser.AllowHTMLComments && st == parser.SourceScript,
		Strict:       opts.Parser.Strict || st == parser.SourceModule,
	}
}
