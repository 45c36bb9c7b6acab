// Package eventengine generates the PHP code of an event engine application from a domain
// model.
//
// Generation is a workflow: factories build components reading and writing the slots of
// this package, PrototypeConfig and FunctionalConfig assemble them per flavour and the
// CodeToFiles builders append the components saving the generated units.
package eventengine
