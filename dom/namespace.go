package dom

// Namespace URIs of the documents handled by the converter.
const (
	NamespaceBPMN       = "http://www.omg.org/spec/BPMN/20100524/MODEL"
	NamespaceBPMNDI     = "http://www.omg.org/spec/BPMN/20100524/DI"
	NamespaceCamunda    = "http://camunda.org/schema/1.0/bpmn"
	NamespaceActiviti   = "http://activiti.org/bpmn"
	NamespaceZeebe      = "http://camunda.org/schema/zeebe/1.0"
	NamespaceModeler    = "http://camunda.org/schema/modeler/1.0"
	NamespaceConversion = "http://camunda.org/schema/conversion/1.0"
	NamespaceXSI        = "http://www.w3.org/2001/XMLSchema-instance"
	NamespaceXML        = "http://www.w3.org/XML/1998/namespace"
)

// Default prefixes used when a namespace has to be declared.
const (
	PrefixZeebe      = "zeebe"
	PrefixModeler    = "modeler"
	PrefixConversion = "conversion"
)

// IsCamunda reports whether uri is the legacy engine extension namespace.
// Models created with the older Activiti based tooling use a different URI
// for the same extensions.
func IsCamunda(uri string) bool {
	return uri == NamespaceCamunda || uri == NamespaceActiviti
}
