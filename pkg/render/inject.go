package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/garronej/react-envs/pkg/rewrite"
)

// InjectRuntimeGlobal inserts a script defining the runtime environment
// global as the first child of <head>, so it executes before any
// application bundle script. Existing nodes are neither reordered nor
// removed. Exactly one script is inserted per call; callers invoke this
// once per document render pass.
func InjectRuntimeGlobal(htmlText string, env map[string]string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", errors.Wrap(err, "failed parsing entry HTML")
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		return "", errors.New("entry HTML has no head element")
	}

	script, err := runtimeGlobalScript(env)
	if err != nil {
		return "", err
	}
	head.InsertBefore(script, head.FirstChild)

	var rendered bytes.Buffer
	if err := html.Render(&rendered, doc); err != nil {
		return "", errors.Wrap(err, "failed rendering entry HTML")
	}
	return rendered.String(), nil
}

// Render runs the full two-phase pass over one entry document. It returns
// both the templated-but-not-injected HTML (the state persisted in the
// snapshot artifact) and the final HTML handed back to the build tool.
func Render(htmlText string, env map[string]string) (pre string, final string, err error) {
	pre = Template(htmlText, env)
	final, err = InjectRuntimeGlobal(pre, env)
	if err != nil {
		return "", "", err
	}
	return pre, final, nil
}

// runtimeGlobalScript builds the <script> element defining the runtime
// global. encoding/json escapes '<' and '>' so values can never terminate
// the script element early, and marshals map keys in sorted order so the
// output is deterministic for a given env.
func runtimeGlobalScript(env map[string]string) (*html.Node, error) {
	if env == nil {
		env = map[string]string{}
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, errors.Wrap(err, "failed serializing environment for injection")
	}
	script := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
	}
	script.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: rewrite.RuntimeGlobalName + " = " + string(payload) + ";",
	})
	return script, nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
