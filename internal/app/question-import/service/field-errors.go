package question_import_service

import "fmt"

const (
	fileErrorKey = "file"

	fileErrorMessage = "Template tidak dapat diproses. Perbaiki kesalahan di atas lalu unggah ulang berkas."
	emptyFileMessage = "Berkas tidak berisi soal yang dapat diimpor."
)

// fieldErrors maps a field path such as "row_3.correct_answer" to a message.
type fieldErrors map[string]string

func (e fieldErrors) add(key, msg string) fieldErrors {
	if e == nil {
		e = fieldErrors{}
	}
	if _, ok := e[key]; !ok {
		e[key] = msg
	}
	return e
}

// merge folds src into e. The first message recorded for a key wins.
func (e fieldErrors) merge(src fieldErrors) fieldErrors {
	for k, v := range src {
		e = e.add(k, v)
	}
	return e
}

func rowKey(row int, field string) string {
	return fmt.Sprintf("row_%d.%s", row, field)
}
