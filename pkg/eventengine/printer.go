package eventengine

// Printer renders and edits PHP source. Edits are textual and idempotent: adding a member
// which already exists leaves the code unchanged.
type Printer interface {
	Class(spec ClassSpec) (string, error)
	// AddUse imports the fully qualified name fqcn.
	AddUse(code, fqcn string) (string, error)
	AddImplements(code, iface string) (string, error)
	AddConstant(code string, constant Constant) (string, error)
	AddProperty(code string, property Property) (string, error)
	AddMethod(code string, method Method) (string, error)
	// AppendToMethod appends statements to the body of the named method.
	AppendToMethod(code, method string, statements ...string) (string, error)
	HasMethod(code, method string) bool
	// Schema renders a JSON schema document.
	Schema(schema map[string]any) (string, error)
}

type ClassSpec struct {
	Namespace  string
	Name       string
	Extends    string
	Implements []string
	Uses       []string
	Traits     []string
	Final      bool
}

type Constant struct {
	Name string
	// Value is the PHP expression of the constant.
	Value      string
	Visibility string
}

type Property struct {
	Name       string
	Type       string
	Visibility string
	Nullable   bool
}

type Param struct {
	Name     string
	Type     string
	Nullable bool
}

type Method struct {
	Name       string
	Visibility string
	Static     bool
	Params     []Param
	ReturnType string
	// Body lines, without indentation.
	Body []string
	Doc  string
}
