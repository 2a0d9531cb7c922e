package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/phuslu/log"
)

var _ = Describe("Root", func() {
	var dir string
	var quietLogger *log.Logger

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-cmd-*")
		Expect(err).ToNot(HaveOccurred())
		filePath = filepath.Join(dir, "data.log")
		syncPolicy = "none"
		indexType = "map"
		quietLogger = &log.Logger{
			Level:  log.ErrorLevel,
			Writer: &log.IOWriter{Writer: io.Discard},
		}
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should refuse to open a store which is already open", func() {
		_, closeStore, err := openStore(quietLogger)
		Expect(err).ToNot(HaveOccurred())

		_, _, err = openStore(quietLogger)
		Expect(err).To(MatchError(errLocked))

		Expect(closeStore()).To(Succeed())

		_, closeStore, err = openStore(quietLogger)
		Expect(err).ToNot(HaveOccurred())
		Expect(closeStore()).To(Succeed())
	})

	It("should refuse unknown flag values", func() {
		syncPolicy = "sometimes"
		_, err := storeOptions(quietLogger)
		Expect(err).To(HaveOccurred())

		syncPolicy = "none"
		indexType = "hash"
		_, err = storeOptions(quietLogger)
		Expect(err).To(HaveOccurred())
	})

	It("should set, get, list and delete values", func() {
		run := func(args ...string) string {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(args, "--file", filePath, "--log-level", "error"))
			Expect(rootCmd.Execute()).To(Succeed())
			return out.String()
		}

		run("set", "greeting", "hello")
		run("set", "answer", "42", "--encoding", "integer")
		Expect(run("get", "answer")).To(Equal("42\n"))
		Expect(run("list")).To(Equal("answer\tinteger\t42\ngreeting\tstring\thello\n"))

		run("del", "greeting", "missing")
		Expect(run("list")).To(Equal("answer\tinteger\t42\n"))
		Expect(run("describe")).To(ContainSubstring("Delete Frames: 2"))
	})
})
