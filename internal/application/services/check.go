package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/application/ports"
	"github.com/reglet-dev/chartopts/internal/domain/chart"
	"github.com/reglet-dev/chartopts/internal/domain/report"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

const (
	maxExpressionLength = 1000
	maxASTNodes         = 100
)

// CheckService lints options documents. It runs, in order: JSON Schema
// validation of the raw document, a credential scan when a scanner is
// configured, decoding into the typed graph, version compatibility and user
// expectations. Each step adds findings to a report.
type CheckService struct {
	docs    documents
	scanner ports.SecretScanner

	validatorsMu sync.Mutex
	validators   map[bool]*schema.Validator
}

// CheckOption configures a CheckService.
type CheckOption func(*CheckService)

// WithSecretScanner enables the credential scan.
func WithSecretScanner(scanner ports.SecretScanner) CheckOption {
	return func(s *CheckService) {
		s.scanner = scanner
	}
}

// NewCheckService creates a new check service.
func NewCheckService(loader ports.DocumentLoader, logger *slog.Logger, opts ...CheckOption) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CheckService{
		docs:       documents{loader: loader, logger: logger},
		validators: make(map[bool]*schema.Validator),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check runs every step against the requested document. Load failures are
// returned as errors; everything found in the document is a finding.
func (s *CheckService) Check(ctx context.Context, req dto.CheckRequest) (*report.Report, error) {
	doc, err := s.docs.load(req.Document, req.Path)
	if err != nil {
		return nil, err
	}

	rep := report.New(sourceName(req.Path))
	rep.Target = req.TargetVersion
	defer rep.Finalize()

	s.docs.logger.Debug("checking document", "source", rep.Source, "strict", req.Strict)

	if err := s.checkSchema(rep, doc, req.Strict); err != nil {
		return nil, err
	}

	s.checkSecrets(rep, doc)

	rec := s.checkDecode(rep, doc, req.Strict)
	if rec == nil {
		rep.Skip(report.RuleCompatibility, "document did not decode")
		rep.Skip(report.RuleExpectation, "document did not decode")
		return rep, nil
	}

	s.checkCompatibility(rep, rec, req.TargetVersion)

	if err := s.checkExpectations(ctx, rep, rec, req.Expectations); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *CheckService) validator(strict bool) (*schema.Validator, error) {
	s.validatorsMu.Lock()
	defer s.validatorsMu.Unlock()

	if v, ok := s.validators[strict]; ok {
		return v, nil
	}
	v, err := chart.Options.Compile(strict)
	if err != nil {
		return nil, fmt.Errorf("failed to compile options schema: %w", err)
	}
	s.validators[strict] = v
	return v, nil
}

func (s *CheckService) checkSchema(rep *report.Report, doc map[string]any, strict bool) error {
	v, err := s.validator(strict)
	if err != nil {
		return err
	}
	violations, err := v.Violations(doc)
	if err != nil {
		rep.Add(report.Finding{
			Rule:     report.RuleSchema,
			Status:   report.StatusError,
			Severity: report.SeverityHigh,
			Message:  err.Error(),
		})
		return nil
	}
	if len(violations) == 0 {
		rep.Pass(report.RuleSchema, "document matches the options schema")
		return nil
	}
	for _, vi := range violations {
		rep.Add(report.Finding{
			Rule:     report.RuleSchema,
			Status:   report.StatusFail,
			Severity: report.SeverityHigh,
			Path:     vi.Location,
			Message:  vi.Message,
		})
	}
	return nil
}

func (s *CheckService) checkSecrets(rep *report.Report, doc map[string]any) {
	if s.scanner == nil {
		return
	}
	leaks := s.scanner.Scan(doc)
	if len(leaks) == 0 {
		rep.Pass(report.RuleSecret, "no embedded credentials found")
		return
	}
	for _, leak := range leaks {
		rep.Add(report.Finding{
			Rule:     report.RuleSecret,
			Status:   report.StatusFail,
			Severity: report.SeverityHigh,
			Path:     leak.Path,
			Message:  "possible credential: " + leak.Description,
		})
	}
}

func (s *CheckService) checkDecode(rep *report.Report, doc map[string]any, strict bool) *schema.Record {
	rec, err := chart.Decode(doc, s.docs.decodeOptions(strict)...)
	if err != nil {
		f := report.Finding{
			Rule:     report.RuleDecode,
			Status:   report.StatusFail,
			Severity: report.SeverityHigh,
			Message:  err.Error(),
		}
		var fe *schema.FieldError
		if errors.As(err, &fe) {
			f.Path = fe.Path
			f.Message = fe.Cause.Error()
		}
		var unknown *schema.UnknownFieldError
		if errors.As(err, &unknown) {
			f.Rule = report.RuleUnknownKey
		}
		rep.Add(f)
		return nil
	}

	rep.Pass(report.RuleDecode, "document decodes into the options model")
	for _, path := range rec.DroppedPaths() {
		rep.Add(report.Finding{
			Rule:     report.RuleUnknownKey,
			Status:   report.StatusFail,
			Severity: report.SeverityLow,
			Path:     path,
			Message:  "unrecognized key is dropped from the output",
		})
	}
	return rec
}

func (s *CheckService) checkCompatibility(rep *report.Report, rec *schema.Record, target string) {
	if target == "" {
		rep.Skip(report.RuleCompatibility, "no target version given")
		return
	}
	found, err := schema.CheckCompatibility(rec, target)
	if err != nil {
		rep.Add(report.Finding{
			Rule:    report.RuleCompatibility,
			Status:  report.StatusError,
			Message: err.Error(),
		})
		return
	}
	if len(found) == 0 {
		rep.Pass(report.RuleCompatibility, fmt.Sprintf("every option in use exists in %s", target))
		return
	}
	for _, inc := range found {
		rep.Add(report.Finding{
			Rule:     report.RuleCompatibility,
			Status:   report.StatusFail,
			Severity: report.SeverityMedium,
			Path:     inc.Path,
			Message:  inc.String(),
		})
	}
}

// expectationEnv exposes the trimmed export of rec to expressions.
func expectationEnv(rec *schema.Record) map[string]any {
	out := chart.Encode(rec)
	seriesList, ok := out["series"].([]any)
	if !ok {
		seriesList = []any{}
	}
	chartOpts, ok := out["chart"].(map[string]any)
	if !ok {
		chartOpts = map[string]any{}
	}
	return map[string]any{
		"options": out,
		"series":  seriesList,
		"chart":   chartOpts,
	}
}

func (s *CheckService) checkExpectations(ctx context.Context, rep *report.Report, rec *schema.Record, expects []string) error {
	if len(expects) == 0 {
		rep.Skip(report.RuleExpectation, "no expectations given")
		return nil
	}

	env := expectationEnv(rec)
	for _, expression := range expects {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Add(evaluate(expression, env))
	}
	return nil
}

func evaluate(expression string, env map[string]any) report.Finding {
	f := report.Finding{Rule: report.RuleExpectation, Expression: expression}
	fail := func(status report.Status, format string, args ...any) report.Finding {
		f.Status = status
		f.Severity = report.SeverityMedium
		f.Message = fmt.Sprintf(format, args...)
		return f
	}

	if len(expression) > maxExpressionLength {
		return fail(report.StatusError, "expression too long (max %d chars): %d chars", maxExpressionLength, len(expression))
	}

	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool(), expr.MaxNodes(maxASTNodes))
	if err != nil {
		return fail(report.StatusError, "compilation failed: %v", err)
	}
	output, err := expr.Run(program, env)
	if err != nil {
		return fail(report.StatusError, "evaluation failed: %v", err)
	}
	if passed, _ := output.(bool); !passed {
		return fail(report.StatusFail, "expectation not met")
	}

	f.Status = report.StatusPass
	f.Message = "expectation met"
	return f
}
