// Package fuzztests houses Go fuzz harnesses for the CommonJS scanner.
// They check that arbitrary input terminates, scans deterministically and
// only reports positions inside the buffer.
//
// Назначение: загружать байты в FileSet и прогонять через cjs.Scanner.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/cjs, internal/diag.
package fuzztests
