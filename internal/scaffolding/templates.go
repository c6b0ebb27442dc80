package scaffolding

import "sort"

// StarterTemplate is a built-in template directory written by Init.
type StarterTemplate struct {
	Name        string
	Description string
	// Files maps template-relative paths to their content.
	Files map[string]string
}

// BuiltinTemplates returns the starter templates, sorted by name.
func BuiltinTemplates() []StarterTemplate {
	templates := []StarterTemplate{
		componentTemplate(),
		contextTemplate(),
		hookTemplate(),
		pageTemplate(),
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates
}

// BuiltinArchitectures maps architecture file names to their content.
func BuiltinArchitectures() map[string]string {
	return map[string]string{
		"default.json":                defaultArchitecture,
		"screaming-architecture.yaml": screamingArchitecture,
		"feature-sliced.yaml":         featureSlicedArchitecture,
	}
}

func componentTemplate() StarterTemplate {
	return StarterTemplate{
		Name:        "component",
		Description: "React function component with optional styles, tests and stories",
		Files: map[string]string{
			".conf": `[metadata]
name = React Component
description = Function component with optional styles, tests and stories

[options]
style = css
style_options = css,scss,styled-components,none
style_description = How the component is styled
with_tests = true
with_tests_type = boolean
with_tests_description = Generate a test file
with_stories = false
with_stories_type = boolean
with_stories_description = Generate a Storybook story

[files]
$FILE_NAME.module.css = var_style_css
$FILE_NAME.module.scss = var_style_scss
$FILE_NAME.styles.ts = var_style_styled_components
$FILE_NAME.test.tsx = var_with_tests
$FILE_NAME.stories.tsx = var_with_stories
`,
			"$FILE_NAME.tsx": `{{- if .style_is_css}}import styles from './{{.pascal_name}}.module.css';
{{else if .style_is_scss}}import styles from './{{.pascal_name}}.module.scss';
{{else if .style_is_styled_components}}import { Wrapper } from './{{.pascal_name}}.styles';
{{end}}
export interface {{.pascal_name}}Props {
  children?: React.ReactNode;
}

export function {{.pascal_name}}({ children }: {{.pascal_name}}Props) {
{{- if .style_is_styled_components}}
  return <Wrapper data-testid="{{.kebab_name}}">{children}</Wrapper>;
{{- else if .style_is_none}}
  return <div data-testid="{{.kebab_name}}">{children}</div>;
{{- else}}
  return <div className={styles.root} data-testid="{{.kebab_name}}">{children}</div>;
{{- end}}
}
`,
			"$FILE_NAME.module.css":  ".root {\n  display: block;\n}\n",
			"$FILE_NAME.module.scss": ".root {\n  display: block;\n}\n",
			"$FILE_NAME.styles.ts":   "import styled from 'styled-components';\n\nexport const Wrapper = styled.div`\n  display: block;\n`;\n",
			"$FILE_NAME.test.tsx": `import { render, screen } from '@testing-library/react';
import { {{.pascal_name}} } from './{{.pascal_name}}';

describe('{{.pascal_name}}', () => {
  it('renders its children', () => {
    render(<{{.pascal_name}}>hello</{{.pascal_name}}>);
    expect(screen.getByTestId('{{.kebab_name}}')).toHaveTextContent('hello');
  });
});
`,
			"$FILE_NAME.stories.tsx": `import type { Meta, StoryObj } from '@storybook/react';
import { {{.pascal_name}} } from './{{.pascal_name}}';

const meta: Meta<typeof {{.pascal_name}}> = {
  title: 'Components/{{.pascal_name}}',
  component: {{.pascal_name}},
};
export default meta;

export const Default: StoryObj<typeof {{.pascal_name}}> = {
  args: { children: '{{title_case .name}}' },
};
`,
			"index.ts": "export * from './{{.pascal_name}}';\n",
		},
	}
}

func hookTemplate() StarterTemplate {
	return StarterTemplate{
		Name:        "hook",
		Description: "Custom React hook",
		Files: map[string]string{
			".conf": `[metadata]
name = React Hook
description = Custom hook with an optional test

[options]
with_tests = true
with_tests_type = boolean

[files]
use$FILE_NAME.test.ts = var_with_tests
`,
			"use$FILE_NAME.ts": `import { useState } from 'react';

export function {{.hook_name}}<T>(initial: T) {
  const [value, setValue] = useState<T>(initial);
  return { value, setValue } as const;
}
`,
			"use$FILE_NAME.test.ts": `import { renderHook, act } from '@testing-library/react';
import { {{.hook_name}} } from './{{.hook_name}}';

test('{{.hook_name}} updates its value', () => {
  const { result } = renderHook(() => {{.hook_name}}(0));
  act(() => result.current.setValue(1));
  expect(result.current.value).toBe(1);
});
`,
		},
	}
}

func contextTemplate() StarterTemplate {
	return StarterTemplate{
		Name:        "context",
		Description: "React context with provider and accessor hook",
		Files: map[string]string{
			"$FILE_NAMEContext.tsx": `import { createContext, useContext, useState } from 'react';

interface {{.context_name}}Value {
  state: Record<string, unknown>;
  setState: (next: Record<string, unknown>) => void;
}

const {{.context_name}} = createContext<{{.context_name}}Value | undefined>(undefined);

export function {{.provider_name}}({ children }: { children: React.ReactNode }) {
  const [state, setState] = useState<Record<string, unknown>>({});
  return (
    <{{.context_name}}.Provider value={ { state, setState } }>
      {children}
    </{{.context_name}}.Provider>
  );
}

export function {{.hook_name}}() {
  const ctx = useContext({{.context_name}});
  if (!ctx) {
    throw new Error('{{.hook_name}} must be used inside {{.provider_name}}');
  }
  return ctx;
}
`,
		},
	}
}

func pageTemplate() StarterTemplate {
	return StarterTemplate{
		Name:        "page",
		Description: "Routed page component",
		Files: map[string]string{
			".conf": `[metadata]
name = Page
description = Top-level page

[options]
layout = default
layout_options = default,full-width
`,
			"$FILE_NAMEPage.tsx": `// Generated by {{.generator_name}} {{.version}} on {{.date}}
export default function {{.page_name}}() {
  return (
    <main className="{{if .layout_is_full_width}}page page--full{{else}}page{{end}}">
      <h1>{{title_case .name}}</h1>
    </main>
  );
}
`,
		},
	}
}

const defaultArchitecture = `{
  "name": "default",
  "description": "Components and hooks side by side",
  "structure": [
    {"path": "components", "template": "component"},
    {"path": "hooks", "template": "hook"}
  ]
}
`

const screamingArchitecture = `name: screaming-architecture
description: Folders named after what the feature does
benefits:
  - Features are found by name
  - Everything a feature needs lives together
limitations:
  - Shared code needs its own home
structure:
  - path: components
    template: component
    description: UI of the feature
  - path: hooks
    template: hook
    description: Stateful logic
  - path: context
    template: context
    filename_pattern: "{name}Context"
    description: Shared state of the feature
  - path: pages
    template: page
    description: Routed entry points
`

const featureSlicedArchitecture = `name: feature-sliced
description: Layered slices with ui, model and page segments
structure:
  - path: ui
    template: component
  - path: model
    template: context
    filename_pattern: "{name}Context"
  - path: pages
    template: page
`
