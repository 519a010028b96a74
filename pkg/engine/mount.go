package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// mount creates host nodes for v and inserts them under parent. ns is the
// namespace inherited from the enclosing element.
func (vm *VM) mount(v *vdom.VNode, parent *host.Node, ns string) error {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case vdom.KindElement:
		return vm.mountElement(v, parent, ns)

	case vdom.KindText:
		vm.adapter.Insert(vm.adapter.CreateText(v.Text), parent, nil)

	case vdom.KindRaw:
		vm.adapter.Insert(vm.adapter.CreateRaw(v.Text), parent, nil)

	case vdom.KindFragment:
		return vm.mountChildren(v.Children, parent, ns)

	case vdom.KindComponent:
		if v.Comp != nil {
			return vm.mount(v.Comp.Render(), parent, ns)
		}

	case vdom.KindCustom:
		return vm.mountCustom(v, parent)

	default:
		return errors.New("E014").WithDetailf("kind %s in <%s>", v.Kind, vm.config.TagName)
	}
	return nil
}

func (vm *VM) mountChildren(children []*vdom.VNode, parent *host.Node, ns string) error {
	for _, child := range children {
		if err := vm.mount(child, parent, ns); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) mountElement(v *vdom.VNode, parent *host.Node, ns string) error {
	namespace := v.Namespace
	if namespace == "" {
		namespace = ns
	}

	if v.HasHandlers() {
		vm.engine.logger.Debug("event handlers dropped", "tag", v.Tag, "host", vm.config.TagName)
	}

	elm := vm.adapter.CreateElementNS(v.Tag, namespace)
	vm.applyAttributes(elm, v.Props)

	// Insert before mounting children so nested hosts connect while attached.
	vm.adapter.Insert(elm, parent, nil)

	if namespace == host.HTMLNamespace && vdom.IsVoidElement(v.Tag) {
		if len(v.Children) > 0 {
			vm.engine.logger.Debug("children of void element dropped", "tag", v.Tag, "count", len(v.Children))
		}
		return nil
	}

	childNS := namespace
	if v.Tag == "foreignObject" && namespace == host.SVGNamespace {
		childNS = host.HTMLNamespace
	}
	return vm.mountChildren(v.Children, elm, childNS)
}

// mountCustom creates a nested component host, binds its VM, seeds its
// properties, connects it once it has a parent and then mounts its light
// DOM children, which can consume context the nested component provides.
func (vm *VM) mountCustom(v *vdom.VNode, parent *host.Node) error {
	elm := vm.adapter.CreateElement(v.Tag)
	vm.applyAttributes(elm, v.Props)

	child, err := vm.engine.createVM(elm, v.Ctor, vm.adapter, VMConfig{
		Mode:    host.ModeOpen,
		Owner:   vm,
		TagName: v.Tag,
	})
	if err != nil {
		return err
	}

	for _, b := range v.Bindings {
		elm.SetProperty(b.Key, b.Value)
	}

	vm.adapter.Insert(elm, parent, nil)
	if err := vm.engine.connect(child); err != nil {
		return err
	}

	// Light DOM children belong to this VM's template.
	return vm.mountChildren(v.Children, elm, host.HTMLNamespace)
}

// applyAttributes writes template props as host attributes in sorted key
// order for deterministic output.
func (vm *VM) applyAttributes(elm *host.Node, props vdom.Props) {
	if len(props) == 0 {
		return
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		// Skip internal props
		if strings.HasPrefix(key, "_") {
			continue
		}

		// Handlers are bound on the client, never serialized
		if strings.HasPrefix(key, "on") && vdom.IsHandler(value) {
			continue
		}

		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if b, ok := value.(bool); ok {
			if b {
				vm.adapter.SetAttribute(elm, name, "", "")
			}
			continue
		}
		if value == nil {
			continue
		}

		ns := ""
		if strings.HasPrefix(name, "xlink:") {
			ns = host.XLinkNamespace
			name = strings.TrimPrefix(name, "xlink:")
		}
		vm.adapter.SetAttribute(elm, name, attrToString(value), ns)
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
