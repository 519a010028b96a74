package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vango-dev/ssr"
	"github.com/vango-dev/ssr/internal/config"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/props"
	"github.com/vango-dev/ssr/pkg/publish"
	"github.com/vango-dev/ssr/pkg/serializer"
)

type renderOptions struct {
	props   string
	pretty  bool
	json    bool
	publish string
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <tag>",
		Short: "Render a component to HTML",
		Long: `Render a registered component and print its markup.

Props come from --props, which accepts an inline JSON object, a path to a
.json or .yaml file, or "-" to read JSON from stdin. Keys are applied in
document order.

Examples:
  vango-ssr render x-greeting --props '{"label": "hi"}'
  vango-ssr render x-list --props items.yaml --pretty
  vango-ssr render x-card --props card.json --publish s3://site/fragments/card.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.props, "props", "p", "", "Props: inline JSON, a .json/.yaml file, or - for stdin")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print a JSON object with the tag and markup")
	cmd.Flags().StringVar(&opts.publish, "publish", "", "Upload the markup to s3://bucket/key or write it to a file path")

	return cmd
}

type renderResult struct {
	Tag      string `json:"tag"`
	HTML     string `json:"html"`
	Bytes    int    `json:"bytes"`
	Location string `json:"location,omitempty"`
}

func runRender(cmd *cobra.Command, flags *globalFlags, opts *renderOptions, tag string) error {
	e, err := loadEnv(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	entry, err := e.registry.Lookup(tag)
	if err != nil {
		return err
	}

	bag, err := readProps(opts.props, cmd.InOrStdin())
	if err != nil {
		return err
	}

	r := ssr.New(
		ssr.WithLogger(e.logger),
		ssr.WithSerializer(serializer.New(serializer.Config{
			Pretty: opts.pretty || e.cfg.Serializer.Pretty,
			Indent: e.cfg.Serializer.Indent,
		})),
	)
	html, err := r.RenderComponent(tag, entry.Ctor, bag...)
	if err != nil {
		return err
	}

	result := renderResult{Tag: tag, HTML: html, Bytes: len(html)}

	if opts.publish != "" {
		loc, err := publishRender(cmd.Context(), e, opts.publish, tag, html)
		if err != nil {
			return err
		}
		result.Location = loc
		e.logger.Info("published", "tag", tag, "location", loc)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if result.Location != "" {
		success(out, "Published <%s> to %s (%d bytes)", tag, result.Location, result.Bytes)
		return nil
	}
	_, err = fmt.Fprintln(out, html)
	return err
}

// readProps resolves the --props flag value.
func readProps(value string, stdin io.Reader) (host.Props, error) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		return host.Props{}, nil
	case trimmed == "-":
		return props.DecodeJSON(stdin)
	case strings.HasPrefix(trimmed, "{"):
		return props.Decode([]byte(trimmed), props.FormatJSON)
	default:
		return props.Load(value)
	}
}

func publishRender(ctx context.Context, e *env, raw, tag, html string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dest, err := publish.ParseDestination(raw)
	if err != nil {
		return "", err
	}

	var client publish.ObjectPutter
	if dest.Scheme == "s3" {
		client = newS3Client(e.cfg.Publish.S3)
	}
	pub, err := publish.ForDestination(dest, client)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return pub.Publish(ctx, publish.Object{
		Key:      dest.Key,
		Body:     []byte(html),
		Metadata: map[string]string{"tag": tag},
	})
}

// newS3Client builds an S3 client from configuration and the standard AWS
// environment variables.
func newS3Client(cfg config.S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region:       region,
		UsePathStyle: cfg.UsePathStyle,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
				Source:          "Environment",
			}, nil
		}),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}
