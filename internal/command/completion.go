// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for tdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "live split stats tokens unified watch completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--changed --color -c --filter -f --output -o --query -q --schema --titles -t --tldr --width -W"

    case "$cmd" in
        live)
            local opts="--granularity -g --resume -r --unified -u --tldr"
            ;;
        split)
            local opts="$common"
            ;;
        stats)
            local opts="--changed --color -c --filter -f --granularity -g --output -o --query -q --schema --tldr --unified -u"
            ;;
        tokens)
            local opts="--granularity -g --output -o --query -q --schema --titles -t --tldr"
            ;;
        unified)
            local opts="$common --granularity -g"
            ;;
        watch)
            local opts="$common --delta -d --granularity -g --unified -u"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--granularity" || "$prev" == "-g" ]]; then
        COMPREPLY=( $(compgen -W "words lines chars" -- "$cur") )
        return 0
    fi

    # Flags when the current token starts with '-', otherwise input files.
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _tdiff tdiff
`

const zshCompletionScript = `#compdef tdiff

_tdiff() {
  local -a cmds
  cmds=(
    'live:interactive editor with a live comparison'
    'split:side by side line comparison'
    'stats:added, removed and unchanged counts'
    'tokens:show how a document is tokenized'
    'unified:inline comparison at word, line or character granularity'
    'watch:re-render the comparison whenever either file changes'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--changed[hide unchanged rows and runs]'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-q --query)'{-q,--query}'[gjson query]:query'
  '--schema[dump schema]'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  '(-W --width)'{-W,--width}'[table width]:width'
  )

  local granularity='(-g --granularity)'{-g,--granularity}'[token granularity]:granularity:(words lines chars)'

  if (( CURRENT == 2 )); then
    _describe -t commands 'tdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    live)
      _arguments -C \
        $granularity \
        '(-r --resume)'{-r,--resume}'[resume the saved draft]' \
        '(-u --unified)'{-u,--unified}'[unified view]' \
        '--tldr[show tldr page]' \
        '1::LEFT:_files' \
        '2::RIGHT:_files'
      ;;
    split)
      _arguments -C \
        $common \
        '1:LEFT:_files' \
        '2:RIGHT:_files'
      ;;
    stats)
      _arguments -C \
        '--changed[hide unchanged rows and runs]' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '(-q --query)'{-q,--query}'[gjson query]:query' \
        '--schema[dump schema]' \
        '--tldr[show tldr page]' \
        $granularity \
        '(-u --unified)'{-u,--unified}'[unified view]' \
        '1:LEFT:_files' \
        '2:RIGHT:_files'
      ;;
    tokens)
      _arguments -C \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '(-q --query)'{-q,--query}'[gjson query]:query' \
        '--schema[dump schema]' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '--tldr[show tldr page]' \
        $granularity \
        '1::DOC:_files'
      ;;
    unified)
      _arguments -C \
        $common \
        $granularity \
        '1:LEFT:_files' \
        '2:RIGHT:_files'
      ;;
    watch)
      _arguments -C \
        $common \
        $granularity \
        '(-d --delta)'{-d,--delta}'[print only what changed]' \
        '(-u --unified)'{-u,--unified}'[unified view]' \
        '1:LEFT:_files' \
        '2:RIGHT:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tdiff tdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(stdout(cmd), zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(stdout(cmd), bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: tdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
