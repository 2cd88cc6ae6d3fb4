package embed_data

import _ "embed"

//go:embed prompts/rewrite_block_prompt.tmpl
var RewriteBlockPrompt []byte

//go:embed models_details/model_details.json
var ModelDetails []byte
