package zfmt

import "strings"

// formatter writes indented lines.  A call to ret ends the current line;
// the next write starts a new line at the current indentation.
type formatter struct {
	strings.Builder
	indent  int
	tab     int
	needTab bool
	needRet bool
}

func (f *formatter) flush() {
	if f.needRet {
		f.WriteByte('\n')
		f.needRet = false
	}
}

func (f *formatter) writeTab() {
	f.flush()
	f.WriteString(strings.Repeat(" ", f.indent))
	f.needTab = false
}

func (f *formatter) write(s string) {
	f.flush()
	if f.needTab {
		f.writeTab()
	}
	f.WriteString(s)
}

func (f *formatter) open() {
	f.indent += f.tab
}

func (f *formatter) close() {
	f.indent -= f.tab
}

func (f *formatter) ret() {
	f.needTab = true
	f.needRet = true
}
