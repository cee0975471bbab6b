package typescript

// mapIndex is a test Index over name -> output path
type mapIndex map[string]string

func (ix mapIndex) ImportPath(fromPath, name string) (string, bool) {
	target, ok := ix[name]
	if !ok {
		return "", false
	}
	return ResolvePath(fromPath, target), true
}

func newTestContext(declared ...string) *FileContext {
	fc := NewFileContext("Models/Test.cs", declared)
	fc.enter("Test")
	return fc
}
