package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	yaml "gopkg.in/yaml.v3"

	chat "github.com/zxss702/go-openai/pkg/chat"
	opt "github.com/zxss702/go-openai/pkg/opt"
	schema "github.com/zxss702/go-openai/pkg/schema"
	tool "github.com/zxss702/go-openai/pkg/tool"
	version "github.com/zxss702/go-openai/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	Debug    bool   `name:"debug" help:"Enable debug output"`
	Verbose  bool   `name:"verbose" help:"Enable verbose output"`
	Key      string `env:"OPENAI_API_KEY" help:"API key"`
	Endpoint string `env:"OPENAI_ENDPOINT" help:"API endpoint for OpenAI-compatible servers"`

	// Context
	ctx    context.Context
	client *chat.Client
}

type CLI struct {
	Globals

	Models  ListModelsCmd `cmd:"" help:"Return a list of models"`
	Model   GetModelCmd   `cmd:"" help:"Return one model by name"`
	Chat    ChatCmd       `cmd:"" help:"Send a chat prompt"`
	Version VersionCmd    `cmd:"" help:"Print version information"`
}

type VersionCmd struct{}

type ListModelsCmd struct{}

type GetModelCmd struct {
	Name string `arg:"" help:"Model name"`
}

type ChatCmd struct {
	Prompt          []string      `arg:"" help:"The prompt to send"`
	Model           string        `name:"model" default:"gpt-4o-mini" help:"Model to use"`
	System          string        `name:"system" help:"System prompt"`
	NoStream        bool          `name:"no-stream" help:"Wait for the full response instead of streaming"`
	StreamInterval  time.Duration `name:"stream-interval" help:"Drain streamed output at this interval instead of per event"`
	Temperature     *float64      `name:"temperature" help:"Sampling temperature (0.0 to 2.0)"`
	MaxTokens       *uint         `name:"max-tokens" help:"Maximum tokens to generate"`
	ReasoningEffort string        `name:"reasoning-effort" help:"Reasoning effort (minimal, low, medium, high)"`
	Schema          string        `name:"schema" type:"path" help:"JSON or YAML schema file constraining the output"`
	Tools           bool          `name:"tools" help:"Expose the built-in clock tool and run requested tool calls"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Chat completions command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Client options
	clientopts := []client.ClientOpt{}
	if cli.Debug || cli.Verbose {
		clientopts = append(clientopts, client.OptTrace(os.Stderr, cli.Verbose))
	}

	// Create the client, except for commands that do not need one
	if cmd.Command() != "version" {
		var c *chat.Client
		var err error
		if cli.Endpoint != "" {
			c, err = chat.NewWithEndpoint(cli.Endpoint, cli.Key, clientopts...)
		} else {
			c, err = chat.New(cli.Key, clientopts...)
		}
		if err != nil {
			cmd.FatalIfErrorf(err)
			return
		}
		cli.Globals.client = c
	}

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (*VersionCmd) Run(*Globals) error {
	fmt.Println(string(version.JSON(execName())))
	return nil
}

func (*ListModelsCmd) Run(globals *Globals) error {
	models, err := globals.client.ListModels(globals.ctx)
	if err != nil {
		return err
	}
	for _, model := range models {
		fmt.Println(model.Name)
	}
	return nil
}

func (c *GetModelCmd) Run(globals *Globals) error {
	model, err := globals.client.GetModel(globals.ctx, c.Name)
	if err != nil {
		return err
	}
	fmt.Println(model)
	return nil
}

func (c *ChatCmd) Run(globals *Globals) error {
	opts := []opt.Opt{}
	if c.System != "" {
		opts = append(opts, chat.WithSystemPrompt(c.System))
	}
	if c.Temperature != nil {
		opts = append(opts, chat.WithTemperature(*c.Temperature))
	}
	if c.MaxTokens != nil {
		opts = append(opts, chat.WithMaxTokens(*c.MaxTokens))
	}
	if c.ReasoningEffort != "" {
		opts = append(opts, chat.WithReasoningEffort(c.ReasoningEffort))
	}
	if c.Schema != "" {
		jsonSchema, err := readSchemaFile(c.Schema)
		if err != nil {
			return err
		}
		opts = append(opts, chat.WithJSONSchema(jsonSchema))
	}

	// Stream output as it arrives unless disabled
	if !c.NoStream {
		fn := func(snapshot schema.Snapshot) error {
			if snapshot.ThinkingDelta != "" && globals.Verbose {
				fmt.Fprint(os.Stderr, snapshot.ThinkingDelta)
			}
			if snapshot.TextDelta != "" {
				fmt.Print(snapshot.TextDelta)
			}
			return nil
		}
		if c.StreamInterval > 0 {
			opts = append(opts, chat.WithStreamInterval(fn, c.StreamInterval))
		} else {
			opts = append(opts, chat.WithStream(fn))
		}
	}

	var toolkit *tool.Toolkit
	if c.Tools {
		var err error
		toolkit, err = newToolkit()
		if err != nil {
			return err
		}
		opts = append(opts, chat.WithToolkit(toolkit))
	}

	message, err := schema.NewMessage(schema.RoleUser, strings.Join(c.Prompt, " "))
	if err != nil {
		return err
	}

	model, err := globals.client.GetModel(globals.ctx, c.Model)
	if err != nil {
		return err
	}

	session := schema.Conversation{}
	var response *schema.Message
	for range maxToolRounds {
		response, err = globals.client.WithSession(globals.ctx, *model, &session, message, opts...)
		if err != nil {
			return err
		}

		// Run any requested tool calls and feed the results back
		calls := response.ToolCalls()
		if toolkit == nil || len(calls) == 0 {
			break
		}
		results := make([]schema.ContentBlock, 0, len(calls))
		for _, call := range calls {
			if globals.Verbose {
				fmt.Fprintf(os.Stderr, "=> %s(%s)\n", call.Name, string(call.Input))
			}
			value, err := toolkit.Run(globals.ctx, call.Name, call.Input)
			if err != nil {
				results = append(results, schema.NewToolError(call.ID, call.Name, err))
			} else {
				results = append(results, schema.NewToolResult(call.ID, call.Name, value))
			}
		}
		if message, err = schema.NewMessage(schema.RoleTool, "", schema.WithToolResults(results...)); err != nil {
			return err
		}
	}

	if c.NoStream {
		fmt.Println(response.Text())
	} else {
		fmt.Println()
	}
	if globals.Verbose {
		usage := session.Usage()
		fmt.Fprintf(os.Stderr, "tokens: %d prompt, %d completion, %d total\n", usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// HELPERS

// maxToolRounds bounds the number of tool-call round trips in one chat
const maxToolRounds = 5

// newToolkit returns the built-in tools exposed with the --tools flag
func newToolkit() (*tool.Toolkit, error) {
	clock, err := tool.NewSimple("current_time", "Return the current local time in RFC 3339 format", func(context.Context) (any, error) {
		return time.Now().Format(time.RFC3339), nil
	})
	if err != nil {
		return nil, err
	}
	return tool.NewToolkit(clock)
}

// readSchemaFile loads a schema document from a JSON or YAML file.
func readSchemaFile(path string) (schema.JSONSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var s schema.JSONSchema
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return schema.NewJSONSchema(data), nil
	}
}

func execName() string {
	name, err := os.Executable()
	if err != nil {
		return "chat"
	}
	return filepath.Base(name)
}
