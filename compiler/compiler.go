package compiler

import (
	"errors"

	"bantam_compiler/compiler/ast"
	"bantam_compiler/compiler/semant"
)

// Generator is the code generation stage. It receives the annotated program only when analysis reported
// nothing, and treats the class forest and the recorded types as authoritative.
type Generator interface {
	Generate(program *ast.Program, result *semant.Result) error
}

var errNoProgram = errors.New("compiler: no program to compile")

// Compile analyzes program and, if it is free of semantic errors, hands it to gen. A nil gen only runs
// the analysis. The analysis result is returned even when compilation fails, so a driver can print the
// diagnostics; the error is then the folded diagnostics.
func Compile(program *ast.Program, gen Generator, opts semant.Options) (*semant.Result, error) {
	if program == nil {
		return nil, errNoProgram
	}
	logf(opts, "compiler: start semantic analysis")
	result := semant.Analyze(program, opts)
	if err := result.Diagnostics.Err(); err != nil {
		return result, err
	}
	if gen == nil {
		return result, nil
	}
	logf(opts, "compiler: start generate codes")
	return result, gen.Generate(program, result)
}

func logf(opts semant.Options, format string, args ...interface{}) {
	if opts.Logger != nil {
		opts.Logger.Printf(format, args...)
	}
}
