package server_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/server"
)

// replyRecorder records the replies of a command in a readable form.
type replyRecorder struct {
	replies []string
}

func (r *replyRecorder) WriteError(msg string) {
	r.replies = append(r.replies, "-"+msg)
}

func (r *replyRecorder) WriteString(str string) {
	r.replies = append(r.replies, "+"+str)
}

func (r *replyRecorder) WriteBulk(bulk []byte) {
	r.replies = append(r.replies, "$"+string(bulk))
}

func (r *replyRecorder) WriteBulkString(bulk string) {
	r.replies = append(r.replies, "$"+bulk)
}

func (r *replyRecorder) WriteInt(num int) {
	r.replies = append(r.replies, fmt.Sprintf(":%d", num))
}

func (r *replyRecorder) WriteArray(count int) {
	r.replies = append(r.replies, fmt.Sprintf("*%d", count))
}

func (r *replyRecorder) WriteNull() {
	r.replies = append(r.replies, "$nil")
}

func command(args ...string) [][]byte {
	result := make([][]byte, len(args))
	for i, arg := range args {
		result[i] = []byte(arg)
	}
	return result
}

var _ = Describe("RESPServer", func() {
	var guarded *server.Guarded
	var cleanup func()
	var respServer *server.RESPServer

	BeforeEach(func() {
		guarded, cleanup = openGuarded()
		respServer = server.NewRESPServer("127.0.0.1:0", guarded, quietLogger)
	})

	AfterEach(func() {
		cleanup()
	})

	execute := func(args ...string) []string {
		var recorder replyRecorder
		Expect(respServer.Execute(&recorder, command(args...))).To(BeTrue())
		return recorder.replies
	}

	It("should answer pings", func() {
		Expect(execute("PING")).To(Equal([]string{"+PONG"}))
		Expect(execute("ping", "hello")).To(Equal([]string{"$hello"}))
	})

	It("should set, get and delete values", func() {
		Expect(execute("SET", "greeting", "hello")).To(Equal([]string{"+OK"}))
		Expect(execute("GET", "greeting")).To(Equal([]string{"$hello"}))
		Expect(execute("EXISTS", "greeting", "missing")).To(Equal([]string{":1"}))
		Expect(execute("DBSIZE")).To(Equal([]string{":1"}))
		Expect(execute("DEL", "greeting", "missing")).To(Equal([]string{":1"}))
		Expect(execute("GET", "greeting")).To(Equal([]string{"$nil"}))
	})

	It("should render values of other encodings", func() {
		Expect(guarded.Set("answer", encoding.IntegerValue(42))).To(Succeed())
		Expect(execute("GET", "answer")).To(Equal([]string{"$42"}))
	})

	It("should list keys matching a pattern", func() {
		for _, key := range []string{"user:1", "user:2", "order:1"} {
			Expect(execute("SET", key, "x")).To(Equal([]string{"+OK"}))
		}
		Expect(execute("KEYS", "user:*")).To(Equal([]string{"*2", "$user:1", "$user:2"}))
		Expect(execute("KEYS", "*")).To(HaveLen(4))
	})

	It("should refuse keys which are not valid UTF-8", func() {
		replies := execute("SET", "\xff\xfe", "v")
		Expect(replies).To(HaveLen(1))
		Expect(replies[0]).To(HavePrefix("-ERR "))
		Expect(execute("DBSIZE")).To(Equal([]string{":0"}))
	})

	DescribeTable("Refusing malformed commands",
		func(args ...string) {
			replies := execute(args...)
			Expect(replies).To(HaveLen(1))
			Expect(replies[0]).To(HavePrefix("-ERR"))
		},
		Entry("When the command is unknown", "FLUSHALL"),
		Entry("When GET has no key", "GET"),
		Entry("When SET has no value", "SET", "k"),
		Entry("When DEL has no key", "DEL"),
		Entry("When KEYS has no pattern", "KEYS"),
	)

	It("should close the connection on quit", func() {
		var recorder replyRecorder
		Expect(respServer.Execute(&recorder, command("QUIT"))).To(BeFalse())
		Expect(recorder.replies).To(Equal([]string{"+OK"}))
	})
})
