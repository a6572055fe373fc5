// Package fuzztests houses Go fuzz harnesses for the formula front end
// (source -> lexer -> parser) and the rule set loader. The goal is to guard
// against panics, hangs and broken span bookkeeping on arbitrary input.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
