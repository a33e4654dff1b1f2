package collada

const testDocument = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset>
    <unit name="centimeter" meter="0.01"/>
    <up_axis>Z_UP</up_axis>
  </asset>
  <library_images>
    <image id="tex0-image" name="tex0">
      <init_from>tex%200.png</init_from>
    </image>
  </library_images>
  <library_effects>
    <effect id="mat1-effect">
      <profile_COMMON>
        <newparam sid="tex0-surface">
          <surface type="2D"><init_from>tex0-image</init_from></surface>
        </newparam>
        <newparam sid="tex0-sampler">
          <sampler2D><source>tex0-surface</source></sampler2D>
        </newparam>
        <technique sid="common">
          <lambert>
            <emission><color>0.1 0.2 0.3 1</color></emission>
            <diffuse><texture texture="tex0-sampler" texcoord="UVMap"/></diffuse>
          </lambert>
        </technique>
      </profile_COMMON>
    </effect>
    <effect id="mat2-effect">
      <profile_COMMON>
        <technique sid="common">
          <phong>
            <diffuse><color>1 0 0 0.5</color></diffuse>
            <transparency><float>0.25</float></transparency>
          </phong>
        </technique>
      </profile_COMMON>
    </effect>
  </library_effects>
  <library_materials>
    <material id="mat1" name="Textured">
      <instance_effect url="#mat1-effect"/>
    </material>
    <material id="mat2" name="Red">
      <instance_effect url="#mat2-effect"/>
    </material>
  </library_materials>
  <library_geometries>
    <geometry id="quad-mesh" name="Quad">
      <mesh>
        <source id="quad-positions">
          <float_array id="quad-positions-array" count="12">0 0 0 1 0 0 1 1 0 0 1 0</float_array>
          <technique_common>
            <accessor source="#quad-positions-array" count="4" stride="3">
              <param name="X" type="float"/><param name="Y" type="float"/><param name="Z" type="float"/>
            </accessor>
          </technique_common>
        </source>
        <source id="quad-normals">
          <float_array id="quad-normals-array" count="6">0 0 1 0 0 -1</float_array>
          <technique_common>
            <accessor source="#quad-normals-array" count="2" stride="3"/>
          </technique_common>
        </source>
        <source id="quad-uv">
          <float_array id="quad-uv-array" count="8">0 0 1 0 1 1 0 1</float_array>
          <technique_common>
            <accessor source="#quad-uv-array" count="4" stride="2"/>
          </technique_common>
        </source>
        <vertices id="quad-vertices">
          <input semantic="POSITION" source="#quad-positions"/>
        </vertices>
        <polylist count="1" material="textured-symbol">
          <input semantic="VERTEX" source="#quad-vertices" offset="0"/>
          <input semantic="NORMAL" source="#quad-normals" offset="1"/>
          <input semantic="TEXCOORD" source="#quad-uv" offset="2" set="0"/>
          <vcount>4</vcount>
          <p>0 0 0 1 0 1 2 0 2 3 0 3</p>
        </polylist>
        <triangles count="2" material="mat2">
          <input semantic="VERTEX" source="#quad-vertices" offset="0"/>
          <input semantic="NORMAL" source="#quad-normals" offset="1"/>
          <p>0 1 1 1 2 1 2 1 1 1 3 1</p>
        </triangles>
      </mesh>
    </geometry>
    <geometry id="broken-mesh" name="Broken">
      <mesh>
        <source id="broken-positions">
          <float_array id="broken-positions-array" count="6">0 0 0 1 0 0</float_array>
          <technique_common>
            <accessor source="#broken-positions-array" count="2" stride="3"/>
          </technique_common>
        </source>
        <vertices id="broken-vertices">
          <input semantic="POSITION" source="#broken-positions"/>
        </vertices>
        <triangles count="1">
          <input semantic="VERTEX" source="#broken-vertices" offset="0"/>
          <p>0 1 2</p>
        </triangles>
      </mesh>
    </geometry>
    <geometry id="mismatch-mesh" name="Mismatch">
      <mesh>
        <source id="mismatch-positions">
          <float_array id="mismatch-positions-array" count="8">0 0 0 1 0 0 1 1</float_array>
          <technique_common>
            <accessor source="#mismatch-positions-array" count="3" stride="3"/>
          </technique_common>
        </source>
        <vertices id="mismatch-vertices">
          <input semantic="POSITION" source="#mismatch-positions"/>
        </vertices>
        <triangles count="1">
          <input semantic="VERTEX" source="#mismatch-vertices" offset="0"/>
          <p>0 1 2</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
  <library_visual_scenes>
    <visual_scene id="Scene">
      <node id="root">
        <node id="quad-node">
          <instance_geometry url="#quad-mesh">
            <bind_material>
              <technique_common>
                <instance_material symbol="textured-symbol" target="#mat1"/>
              </technique_common>
            </bind_material>
          </instance_geometry>
        </node>
      </node>
    </visual_scene>
  </library_visual_scenes>
</COLLADA>
`
