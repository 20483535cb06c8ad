// Package bpmnconv converts BPMN process models from the Camunda 7 dialect
// to the Zeebe dialect.
//
// A Camunda 7 model configures execution with camunda: extension attributes
// and elements and writes expressions in JUEL. Zeebe reads zeebe: extension
// elements and FEEL expressions. bpmnconv rewrites one into the other and
// reports, per process element, what it changed and what still needs work.
//
// # Packages
//
//   - converter: converts or checks one document and collects the report
//   - visitor: the conversion rules and the registry that orders them
//   - convertible: the target configuration recorded for each process element
//   - expression: translates JUEL expressions to FEEL
//   - dom: a namespace aware view over the BPMN XML
//   - walker: pre-order traversal of a document
//   - batch: converts many documents concurrently
//   - report: renders results as text, JSON, YAML or CSV
//   - properties: converter settings loaded from YAML, TOML and the environment
//   - bpmnerrors: errors that abort a conversion
//
// # Quick Start
//
// Convert a model and print what needs attention:
//
//	import "github.com/erraggy/bpmnconv/converter"
//
//	result, err := converter.Convert("order.bpmn")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range result.Results {
//		fmt.Println(r.String())
//	}
//	_, _ = result.Document.WriteTo(os.Stdout)
//
// Translate a single expression:
//
//	import "github.com/erraggy/bpmnconv/expression"
//
//	res := expression.Transform("${order.total > 100 && !vip}")
//	fmt.Println(res.NewExpression) // =order.total > 100 and not(vip)
//
// # Severities
//
// Every message carries one of four severities, from least to most severe:
// info (a change that needs no action), task (work outside the model, such
// as writing a job worker), review (an automatic translation to check) and
// warning (behaviour that could not be converted).
//
// # Command Line
//
// The bpmnconv command wraps these packages:
//
//	bpmnconv convert -o out/ models/
//	bpmnconv check --format json order.bpmn
//	bpmnconv expression '${execution.getVariable("x")}'
//	bpmnconv mcp
package bpmnconv
