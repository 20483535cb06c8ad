// Package converter converts BPMN models written for the Camunda 7 engine
// into models for Zeebe.
//
// A conversion walks the document once. Rules from the visitor package turn
// camunda extension attributes and elements into convertibles, which record
// the target configuration of each process element, and report messages.
// After the walk the converter removes what the rules consumed and writes
// every convertible as zeebe extension elements.
//
// # Quick Start
//
// Convert a file with default properties:
//
//	result, err := converter.Convert("order.bpmn")
//	if err != nil {
//		log.Fatal(err)
//	}
//	_, _ = result.Document.WriteTo(os.Stdout)
//
// Or create a reusable Converter:
//
//	props, _ := properties.Load("")
//	c, err := converter.New(
//		converter.WithProperties(props),
//		converter.WithMinimumSeverity(converter.SeverityReview),
//	)
//	result, err := c.ConvertFile("order.bpmn")
//
// # Messages
//
// Every process element gets one [CheckResult]. Its messages carry one of
// four severities: Info (nothing to do), Task (work outside the model, such
// as a job worker), Review (check the transformation) and Warning (behaviour
// that could not be converted).
//
// # Fatal Errors
//
// A process element without an id, two process elements with the same id,
// and a rule that finds no enclosing element to configure abort the
// conversion of the document. The returned error wraps one of the typed
// errors of the bpmnerrors package.
//
// # Check Mode
//
// [Converter.Check] runs the same walk without modifying the document, for
// producing a migration report before converting.
package converter
